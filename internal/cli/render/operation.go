package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/representatives-dao/repms/internal/usecase"
)

// OperationRenderer renders the outcome of contract calls
type OperationRenderer struct {
	out   io.Writer
	links Links
}

// NewOperationRenderer creates a new operation renderer
func NewOperationRenderer(out io.Writer, links Links) *OperationRenderer {
	return &OperationRenderer{out: out, links: links}
}

// RenderCreate renders a created proposal
func (r *OperationRenderer) RenderCreate(result *usecase.CreateProposalResult) error {
	if result.Operation.DryRun {
		fmt.Fprintf(r.out, "Proposal to %s\n", result.Description.Summary)
		for _, line := range result.Description.Details {
			fmt.Fprintf(r.out, "  - %s\n", line)
		}
		return r.renderOperation(result.Operation, "")
	}
	return r.renderOperation(result.Operation, fmt.Sprintf("Proposed to %s", result.Description.Summary))
}

// RenderVote renders a cast vote
func (r *OperationRenderer) RenderVote(result *usecase.VoteProposalResult) error {
	vote := "no"
	if result.Approval {
		vote = "yes"
	}
	return r.renderOperation(result.Operation,
		fmt.Sprintf("%s voted %s on proposal #%d", result.Community, vote, result.ProposalID))
}

// RenderExecute renders an executed proposal
func (r *OperationRenderer) RenderExecute(result *usecase.ExecuteProposalResult) error {
	return r.renderOperation(result.Operation,
		fmt.Sprintf("Executed proposal #%d: %s", result.ProposalID, result.Description.Summary))
}

func (r *OperationRenderer) renderOperation(op *usecase.OperationResult, success string) error {
	if op.DryRun {
		fmt.Fprintf(r.out, "Entrypoint: %s\n", op.Entrypoint)
		fmt.Fprintf(r.out, "Parameter:  %s\n", op.Parameter)
		fmt.Fprintln(r.out, FormatWarning("Dry run, the operation was not sent:"))
		fmt.Fprintf(r.out, "  %s\n", shellJoin(op.Command))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(success))
	fmt.Fprintf(r.out, "Operation: %s\n", op.Hash)
	if url := r.links.Explorer(op.Hash); url != "" {
		fmt.Fprintf(r.out, "           %s\n", faintStyle.Sprint(url))
	}
	return nil
}

// RenderUpload renders an uploaded file
func (r *OperationRenderer) RenderUpload(result *usecase.UploadFileResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Uploaded %s (%d bytes)", result.File, result.Size)))
	fmt.Fprintf(r.out, "IPFS path: %s\n", result.IPFSPath)
	fmt.Fprintf(r.out, "Propose it with: repms propose text --ipfs-path %s\n", result.IPFSPath)
	return nil
}

// shellJoin quotes the arguments that need it so the command can be pasted
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'`$\\(){}[]*?;&|<>#") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}
