package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// InfoCommand prints the instance information.
type InfoCommand struct {
	rt *runtime
}

func (c *InfoCommand) Execute([]string) error {
	cl, err := c.rt.client()
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()

	info, err := cl.ApplicationInformation(ctx)
	if err != nil {
		return err
	}
	lifetime := "unlimited"
	if info.PasteLifetime >= 0 {
		lifetime = fmt.Sprintf("%ds", info.PasteLifetime)
	}
	fmt.Fprintf(c.rt.stdout, "version: %s\nmodification tokens: %t\nreports: %t\npaste lifetime: %s\n",
		info.Version, info.ModificationTokens, info.Reports, lifetime)
	return nil
}

// CreateCommand creates a paste.
type CreateCommand struct {
	Args struct {
		File string `positional-arg-name:"FILE" description:"file to upload, stdin when omitted"`
	} `positional-args:"yes"`

	rt *runtime
}

func (c *CreateCommand) Execute([]string) error {
	content, err := c.rt.readContent(c.Args.File)
	if err != nil {
		return err
	}
	cl, err := c.rt.client()
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()

	created, err := cl.CreatePaste(ctx, content, nil)
	if err != nil {
		return err
	}
	c.rt.log.WithFields(logrus.Fields{"id": created.ID, "bytes": len(content)}).Debug("created paste")
	fmt.Fprintf(c.rt.stdout, "id: %s\nurl: %s\ntoken: %s\n", created.ID, c.rt.pasteURL(created.ID), created.ModificationToken)
	return nil
}

// GetCommand prints a paste.
type GetCommand struct {
	Args struct {
		ID string `positional-arg-name:"ID" required:"yes"`
	} `positional-args:"yes"`

	rt *runtime
}

func (c *GetCommand) Execute([]string) error {
	cl, err := c.rt.client()
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()

	p, err := cl.Paste(ctx, c.Args.ID)
	if err != nil {
		return err
	}
	c.rt.log.WithFields(logrus.Fields{"id": p.ID, "created": p.Created}).Debug("fetched paste")
	fmt.Fprint(c.rt.stdout, p.Content)
	return nil
}

// UpdateCommand replaces a paste's content.
type UpdateCommand struct {
	Token string `short:"t" long:"token" env:"PASTY_TOKEN" required:"yes" description:"modification token"`
	Args  struct {
		ID   string `positional-arg-name:"ID" required:"yes"`
		File string `positional-arg-name:"FILE" description:"new content, stdin when omitted"`
	} `positional-args:"yes"`

	rt *runtime
}

func (c *UpdateCommand) Execute([]string) error {
	content, err := c.rt.readContent(c.Args.File)
	if err != nil {
		return err
	}
	cl, err := c.rt.client()
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()

	if err := cl.Authenticate(c.Token).UpdatePaste(ctx, c.Args.ID, content, nil); err != nil {
		return err
	}
	c.rt.log.WithField("id", c.Args.ID).Info("paste updated")
	return nil
}

// DeleteCommand deletes a paste.
type DeleteCommand struct {
	Token string `short:"t" long:"token" env:"PASTY_TOKEN" required:"yes" description:"modification token"`
	Args  struct {
		ID string `positional-arg-name:"ID" required:"yes"`
	} `positional-args:"yes"`

	rt *runtime
}

func (c *DeleteCommand) Execute([]string) error {
	cl, err := c.rt.client()
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()

	if err := cl.Authenticate(c.Token).DeletePaste(ctx, c.Args.ID); err != nil {
		return err
	}
	c.rt.log.WithField("id", c.Args.ID).Info("paste deleted")
	return nil
}
