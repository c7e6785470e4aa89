// Package cli implements the pasty command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/tombowditch/pasty-go/client"
)

// Options are the global flags. Commands are attached as sub-structs.
type Options struct {
	URL     string        `short:"u" long:"url" env:"PASTY_URL" default:"https://pasty.lus.pm" description:"pasty instance base URL"`
	Timeout time.Duration `long:"timeout" default:"30s" description:"request timeout, 0 for none"`
	Verbose bool          `short:"v" long:"verbose" description:"enable debug logging"`

	Info   InfoCommand   `command:"info" description:"show instance information"`
	Create CreateCommand `command:"create" description:"create a paste from a file or stdin"`
	Get    GetCommand    `command:"get" description:"print the content of a paste"`
	Update UpdateCommand `command:"update" description:"replace the content of a paste"`
	Delete DeleteCommand `command:"delete" description:"delete a paste"`
}

// runtime is shared by all commands of one invocation.
type runtime struct {
	opts   *Options
	stdin  io.Reader
	stdout io.Writer
	log    *logrus.Logger
}

func (r *runtime) client() (*client.UnauthenticatedClient, error) {
	if r.opts.Verbose {
		r.log.SetLevel(logrus.DebugLevel)
	}
	r.log.WithFields(logrus.Fields{
		"url":     r.opts.URL,
		"timeout": r.opts.Timeout,
	}).Debug("creating client")

	var opts []client.Option
	if r.opts.Timeout > 0 {
		opts = append(opts, client.WithTimeout(r.opts.Timeout))
	}
	return client.New(r.opts.URL, opts...)
}

// readContent reads path, or stdin when path is empty or "-".
func (r *runtime) readContent(path string) (string, error) {
	if path == "" || path == "-" {
		r.log.Debug("reading content from stdin")
		b, err := io.ReadAll(r.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

// pasteURL is the frontend link of a paste.
func (r *runtime) pasteURL(id string) string {
	return strings.TrimSuffix(r.opts.URL, "/") + "/" + id
}

// Run parses args and executes the selected command.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)

	opts := &Options{}
	rt := &runtime{opts: opts, stdin: stdin, stdout: stdout, log: logger}
	opts.Info.rt = rt
	opts.Create.rt = rt
	opts.Get.rt = rt
	opts.Update.rt = rt
	opts.Delete.rt = rt

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "pasty"
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return nil
		}
		return err
	}
	return nil
}

// Describe turns an error into a one-line message for the terminal.
func Describe(err error) string {
	switch {
	case client.IsNotFound(err):
		return "paste not found"
	case client.IsUnauthorized(err):
		return "modification token rejected"
	case client.IsConfig(err):
		return err.Error()
	}
	var apiErr *client.Error
	if errors.As(err, &apiErr) && apiErr.Code == client.ErrNetwork && apiErr.Err != nil {
		return "could not reach server: " + apiErr.Err.Error()
	}
	return err.Error()
}
