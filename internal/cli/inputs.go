package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/representatives-dao/repms/internal/codec"
)

// parseProposalID parses a proposal id, with or without a leading #
func parseProposalID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid proposal id: %q", arg)
	}
	return id, nil
}

// parseApproval parses a yes or no vote
func parseApproval(arg string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "yes", "y", "true", "approve":
		return true, nil
	case "no", "n", "false", "reject":
		return false, nil
	}
	return false, fmt.Errorf("invalid vote %q (expected yes or no)", arg)
}

// parseTransferFlags parses --to values of the form <address>=<amount>
func parseTransferFlags(values []string) ([]codec.TransferInput, error) {
	transfers := make([]codec.TransferInput, 0, len(values))
	for _, value := range values {
		destination, amount, ok := strings.Cut(value, "=")
		if !ok {
			return nil, fmt.Errorf("invalid transfer %q (expected <address>=<amount>)", value)
		}
		transfers = append(transfers, codec.TransferInput{
			Destination: strings.TrimSpace(destination),
			Amount:      strings.TrimSpace(amount),
		})
	}
	return transfers, nil
}

// loadTransfersFile reads transfers from a YAML file, either a bare list or
// a document with a transfers key
func loadTransfersFile(path string) ([]codec.TransferInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfers file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse transfers file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("transfers file %s is empty", path)
	}

	root := doc.Content[0]
	var transfers []codec.TransferInput
	if root.Kind == yaml.SequenceNode {
		err = root.Decode(&transfers)
	} else {
		var file struct {
			Transfers []codec.TransferInput `yaml:"transfers"`
		}
		err = root.Decode(&file)
		transfers = file.Transfers
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse transfers file: %w", err)
	}
	return transfers, nil
}

// collectTransfers merges --to flags and a transfers file
func collectTransfers(to []string, file string) ([]codec.TransferInput, error) {
	transfers, err := parseTransferFlags(to)
	if err != nil {
		return nil, err
	}
	if file != "" {
		fromFile, err := loadTransfersFile(file)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, fromFile...)
	}
	return transfers, nil
}

// loadLambdaSource returns inline code or the content of a code file
func loadLambdaSource(code, file string) (string, error) {
	switch {
	case code != "" && file != "":
		return "", fmt.Errorf("use either --code or --code-file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read code file: %w", err)
		}
		return string(data), nil
	case code != "":
		return code, nil
	}
	return "", fmt.Errorf("lambda code is required (--code or --code-file)")
}
