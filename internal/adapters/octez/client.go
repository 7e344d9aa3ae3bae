package octez

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"blockwatch.cc/tzgo/tezos"
	"github.com/creack/pty"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/usecase"
)

// DefaultBinary is the octez client looked up in PATH
const DefaultBinary = "octez-client"

// DefaultBurnCap covers the storage of a large lambda proposal
const DefaultBurnCap = "0.5"

var operationHashPattern = regexp.MustCompile(`Operation hash is '([1-9A-HJ-NP-Za-km-z]+)'`)

// ErrNoSigner is returned when neither a signer nor an account is configured
var ErrNoSigner = errors.New("no signer configured (set it with `repms config set signer <octez alias>`)")

// ClientAdapter signs and injects contract calls with octez-client
type ClientAdapter struct {
	binary  string
	baseDir string
	rpcURL  string
	signer  string
	burnCap string
	dryRun  bool
	debug   bool
	// stdin is forwarded to the client for password prompts, nil when non interactive
	stdin  io.Reader
	stdout io.Writer
	log    *slog.Logger

	// input carries stdin chunks from a single reader to whichever client runs
	inputOnce sync.Once
	input     chan []byte
}

// NewClientAdapter creates a submitter from the runtime configuration
func NewClientAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ClientAdapter {
	a := &ClientAdapter{
		binary:  cfg.Octez.Binary,
		baseDir: cfg.Octez.BaseDir,
		signer:  cfg.Signing(),
		burnCap: cfg.Octez.BurnCap,
		dryRun:  cfg.DryRun,
		debug:   cfg.Debug,
		stdout:  os.Stderr,
		log:     log.With("component", "OctezClient"),
	}
	if cfg.Network != nil {
		a.rpcURL = cfg.Network.RPCURL
	}
	if a.binary == "" {
		a.binary = DefaultBinary
	}
	if a.burnCap == "" {
		a.burnCap = DefaultBurnCap
	}
	if !cfg.NonInteractive {
		a.stdin = os.Stdin
	}
	return a
}

// BuildArgs returns the octez-client arguments for a contract call
func (a *ClientAdapter) BuildArgs(call usecase.ContractCall) []string {
	var args []string
	if a.baseDir != "" {
		args = append(args, "--base-dir", a.baseDir)
	}
	if a.rpcURL != "" {
		args = append(args, "--endpoint", a.rpcURL)
	}
	// confirmation is followed through the indexer
	args = append(args, "--wait", "none")
	args = append(args,
		"transfer", "0",
		"from", a.signer,
		"to", call.Contract,
		"--entrypoint", call.Entrypoint,
		"--arg", codec.EmitMicheline(call.Parameter, codec.EmitOptions{}),
		"--burn-cap", a.burnCap,
	)
	return args
}

// Submit runs octez-client and returns the injected operation hash. In dry
// run mode the command is returned without being run.
func (a *ClientAdapter) Submit(ctx context.Context, call usecase.ContractCall) (*usecase.OperationResult, error) {
	if a.signer == "" {
		return nil, ErrNoSigner
	}

	args := a.BuildArgs(call)
	result := &usecase.OperationResult{
		Entrypoint: call.Entrypoint,
		Parameter:  codec.EmitMicheline(call.Parameter, codec.EmitOptions{}),
		Command:    append([]string{a.binary}, args...),
		DryRun:     a.dryRun,
	}
	if a.dryRun {
		return result, nil
	}

	a.log.Debug("running octez-client", "args", args)
	output, err := a.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("octez-client failed: %w\n%s", err, lastLines(output, 10))
	}

	hash, err := ParseOperationHash(output)
	if err != nil {
		return nil, fmt.Errorf("%w\n%s", err, lastLines(output, 10))
	}
	result.Hash = hash
	return result, nil
}

// run executes the client in a pseudo terminal so that key password prompts work
func (a *ClientAdapter) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, a.binary, args...)
	cmd.Env = append(os.Environ(), "TEZOS_CLIENT_UNSAFE_DISABLE_DISCLAIMER=Y")

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	if a.stdin != nil {
		stop := a.forwardInput(ptyFile)
		defer stop()
	}

	var output bytes.Buffer
	var reader io.Reader = io.TeeReader(ptyFile, &output)
	// prompts must reach the user when they can answer them
	if (a.debug || a.stdin != nil) && a.stdout != nil {
		reader = io.TeeReader(reader, a.stdout)
	}
	// the pty returns EIO once the child exits
	_, _ = io.Copy(io.Discard, reader)

	err = cmd.Wait()
	return output.String(), err
}

// forwardInput writes stdin chunks to w until the returned stop func is called.
// Chunks read after stop wait for the next run.
func (a *ClientAdapter) forwardInput(w io.Writer) (stop func()) {
	a.inputOnce.Do(func() {
		a.input = make(chan []byte)
		go a.readInput()
	})

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			select {
			case <-done:
				return
			case chunk, ok := <-a.input:
				if !ok {
					return
				}
				if _, err := w.Write(chunk); err != nil {
					a.log.Debug("failed to forward input", "error", err)
				}
			}
		}
	}()

	return func() {
		close(done)
		<-exited
	}
}

// readInput is the only reader of stdin for the lifetime of the adapter
func (a *ClientAdapter) readInput() {
	defer close(a.input)
	buf := make([]byte, 1024)
	for {
		n, err := a.stdin.Read(buf)
		if n > 0 {
			a.input <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			return
		}
	}
}

// ParseOperationHash extracts the injected operation hash from the client output
func ParseOperationHash(output string) (string, error) {
	match := operationHashPattern.FindStringSubmatch(output)
	if match == nil {
		return "", fmt.Errorf("no operation hash in octez-client output")
	}
	if _, err := tezos.ParseOpHash(match[1]); err != nil {
		return "", fmt.Errorf("invalid operation hash %q: %w", match[1], err)
	}
	return match[1], nil
}

func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(output, "\r\n", "\n"), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

var _ usecase.OperationSubmitter = (*ClientAdapter)(nil)
