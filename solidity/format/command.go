package format

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/abisol/errors"
)

// Command returns a formatter that pipes source through an external program
// reading stdin and writing stdout, e.g. "forge fmt --raw -". The command
// line is split with shell quoting rules.
func Command(commandLine string) (func(string) (string, error), error) {
	args, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid formatter command %q", commandLine)
	}
	if len(args) == 0 {
		return nil, errors.New("empty formatter command")
	}

	return func(source string) (string, error) {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdin = strings.NewReader(source)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return "", errors.Wrapf(err, "formatter %s failed: %s", args[0], strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() == 0 {
			return "", errors.Newf("formatter %s produced no output", args[0])
		}
		return stdout.String(), nil
	}, nil
}
