package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/assistant"
	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/model"
)

var flagHistoryLimit int

var askCmd = &cobra.Command{
	Use:     "ask <question>",
	Short:   "Ask the wallet assistant a question",
	Example: `  mywallet ask "what's my balance?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAsk,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the wallet assistant",
	Long:  "Start an interactive chat. Type /reset to clear the conversation and /quit to leave.",
	RunE:  runChat,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the chat transcript",
	RunE:  runChatHistory,
}

var chatResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the chat transcript",
	RunE:  runChatReset,
}

func init() {
	chatHistoryCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 0, "Show only the last N messages")
	chatCmd.AddCommand(chatHistoryCmd, chatResetCmd)
	rootCmd.AddCommand(askCmd, chatCmd)
}

var (
	userLabel = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorGreen)
	botLabel  = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorPrimary)
)

func runAsk(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	return withWallet(func(e *env, _ model.Session) error {
		chat := assistant.NewChat(e.engine, e.responder(), 0, e.logger)
		reply, err := awaitReply(chat, query, false)
		if err != nil {
			return err
		}
		fmt.Println(reply.Text)
		return nil
	})
}

func runChat(_ *cobra.Command, _ []string) error {
	return withWallet(func(e *env, sess model.Session) error {
		chat := assistant.NewChat(e.engine, e.responder(), e.cfg.TypingDelay(), e.logger)

		fmt.Println()
		fmt.Println(cli.RenderTitle("AI CHAT"))
		fmt.Println()
		printTranscript(e.engine.Transcript(), 6)
		fmt.Println(cli.RenderNotice("/reset clears the conversation, /quit leaves."))
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(userLabel.Render(sess.DisplayName()) + " > ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/reset":
				chat.Reset()
				printTranscript(e.engine.Transcript(), 0)
				continue
			}

			reply, err := awaitReply(chat, line, !flagQuiet)
			if err != nil {
				return err
			}
			printMessage(reply)
		}
	})
}

func runChatHistory(_ *cobra.Command, _ []string) error {
	return withWallet(func(e *env, _ model.Session) error {
		fmt.Println()
		printTranscript(e.engine.Transcript(), flagHistoryLimit)
		return nil
	})
}

func runChatReset(_ *cobra.Command, _ []string) error {
	return withWallet(func(e *env, _ model.Session) error {
		assistant.NewChat(e.engine, e.responder(), 0, e.logger).Reset()
		if !flagQuiet {
			fmt.Println(cli.RenderNotice("Chat cleared."))
		}
		return nil
	})
}

// awaitReply asks query and blocks until the reply arrives, animating a
// typing indicator on stderr when spin is set.
func awaitReply(chat *assistant.Chat, query string, spin bool) (model.ChatMessage, error) {
	ch, err := chat.Ask(query)
	if err != nil {
		return model.ChatMessage{}, err
	}

	var tick <-chan time.Time
	frames := spinner.Dot.Frames
	if spin {
		ticker := time.NewTicker(spinner.Dot.FPS)
		defer ticker.Stop()
		tick = ticker.C
	}

	for i := 0; ; i++ {
		select {
		case msg, ok := <-ch:
			if spin {
				fmt.Fprint(os.Stderr, "\r\033[K")
			}
			if !ok {
				return model.ChatMessage{}, errors.New("reply canceled")
			}
			return msg, nil
		case <-tick:
			fmt.Fprintf(os.Stderr, "\r  %s My Wallet AI is typing...", frames[i%len(frames)])
		}
	}
}

func printTranscript(msgs []model.ChatMessage, limit int) {
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	for _, m := range msgs {
		printMessage(m)
	}
}

func printMessage(m model.ChatMessage) {
	label := botLabel.Render("My Wallet AI")
	if m.Role == model.RoleUser {
		label = userLabel.Render("You")
	}
	fmt.Printf("%s\n%s\n\n", label, indent(m.Text, "  "))
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
