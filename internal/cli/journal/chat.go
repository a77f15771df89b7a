package journal

import (
	"fmt"
	"strings"

	"github.com/julianstephens/noor/internal/chat"
	"github.com/julianstephens/noor/internal/cli"
)

// ChatCmd is a private note-to-self log that starts empty every day.
type ChatCmd struct {
	List  ChatListCmd  `cmd:"" help:"Show today's messages." default:"1"`
	Send  ChatSendCmd  `cmd:"" help:"Add a message."`
	Clear ChatClearCmd `cmd:"" help:"Remove today's messages."`
}

type ChatListCmd struct{}

func (c *ChatListCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	log := chat.New(ctx.Store)
	wiped, err := log.EnsureToday(now)
	if err != nil {
		return err
	}
	if wiped {
		fmt.Println(cli.MutedStyle.Render("A new day. Yesterday's messages were cleared."))
	}
	msgs, err := log.List(now)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Println("No messages today.")
		return nil
	}
	for _, m := range msgs {
		fmt.Printf("%s  %s\n", cli.MutedStyle.Render(m.CreatedAt.In(now.Location()).Format("15:04")), m.Text)
	}
	return nil
}

type ChatSendCmd struct {
	Text []string `arg:"" help:"Message text."`
}

func (c *ChatSendCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	_, ok, err := chat.New(ctx.Store).Send(strings.Join(c.Text, " "), now)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("message cannot be empty")
	}
	fmt.Println("✓ Sent")
	return nil
}

type ChatClearCmd struct{}

func (c *ChatClearCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}
	if err := chat.New(ctx.Store).ClearToday(now); err != nil {
		return err
	}
	fmt.Println("Cleared today's messages.")
	return nil
}
