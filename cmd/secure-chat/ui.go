// ABOUTME: Interactive terminal flow: login/register screens, user directory, chat loop
// ABOUTME: Renders facade results only; history is re-read after every send

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"secure-chat/internal/chat"
)

type ui struct {
	svc  *chat.Service
	in   *bufio.Scanner
	sess *chat.Session

	me    *color.Color
	them  *color.Color
	faint *color.Color
	warn  *color.Color
}

// loop runs the anonymous screen until the user quits or EOF.
func (u *ui) loop(ctx context.Context) error {
	fmt.Println("Commands: login, register, quit")

	for {
		input, err := u.readLine(ctx, "> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		switch input {
		case "login":
			if err := u.doLogin(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "register":
			if err := u.doRegister(ctx); err != nil {
				return err
			}
		case "quit", "exit":
			return nil
		case "":
		default:
			fmt.Println("Commands: login, register, quit")
		}
	}
}

func (u *ui) doRegister(ctx context.Context) error {
	username, err := u.readLine(ctx, "Username: ")
	if err != nil {
		return nil
	}
	password, err := u.readLine(ctx, "Password: ")
	if err != nil {
		return nil
	}
	confirm, err := u.readLine(ctx, "Confirm password: ")
	if err != nil {
		return nil
	}

	if err := u.svc.Register(ctx, username, password, confirm); err != nil {
		u.warn.Printf("Registration failed: %v\n", err)
		return nil
	}

	fmt.Println("Registration successful! Please login.")
	return nil
}

func (u *ui) doLogin(ctx context.Context) error {
	username, err := u.readLine(ctx, "Username: ")
	if err != nil {
		return nil
	}
	password, err := u.readLine(ctx, "Password: ")
	if err != nil {
		return nil
	}

	sess, err := u.svc.Login(ctx, username, password)
	if err != nil {
		u.warn.Printf("Login failed: %v\n", err)
		return nil
	}

	u.sess = sess
	fmt.Printf("Welcome, %s!\n", sess.Username())
	return u.homeLoop(ctx)
}

// homeLoop is the authenticated screen: user directory and partner selection.
func (u *ui) homeLoop(ctx context.Context) error {
	u.showUsers(ctx)
	fmt.Println("Commands: chat <partner>, users, logout, quit")

	for u.sess.Active() {
		input, err := u.readLine(ctx, fmt.Sprintf("%s> ", u.sess.Username()))
		if err != nil {
			return nil
		}

		switch {
		case input == "users":
			u.showUsers(ctx)
		case input == "logout":
			u.svc.Logout(u.sess)
			u.sess = nil
			fmt.Println("Logged out.")
			return nil
		case input == "quit", input == "exit":
			u.svc.Logout(u.sess)
			return io.EOF
		case len(input) > 5 && input[:5] == "chat ":
			u.chatWith(ctx, input[5:])
		case input == "":
		default:
			fmt.Println("Commands: chat <partner>, users, logout, quit")
		}
	}
	return nil
}

// showUsers prints the registered user directory. Join-date formatting
// happens here, not in the core.
func (u *ui) showUsers(ctx context.Context) {
	users, err := u.svc.ListUsers(ctx)
	if err != nil {
		u.warn.Printf("Could not list users: %v\n", err)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Username", "Member Since"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, user := range users {
		table.Append([]string{user.Username, user.JoinedAt.Format("Jan 02, 2006")})
	}
	table.Render()
}

// chatWith opens a conversation and runs the message loop. The full
// history is re-read and re-rendered after every send.
func (u *ui) chatWith(ctx context.Context, partner string) {
	conv, err := u.svc.OpenConversation(ctx, u.sess, partner)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrSelfChat):
			u.warn.Println("You cannot chat with yourself")
		case errors.Is(err, chat.ErrUnknownUser):
			u.warn.Println("User not found")
		default:
			u.warn.Printf("Could not open chat: %v\n", err)
		}
		return
	}

	fmt.Printf("Chatting with %s. /history reloads, /back returns.\n", conv.Partner())
	u.renderHistory(ctx, conv)

	for {
		input, err := u.readLine(ctx, fmt.Sprintf("[%s] ", conv.Partner()))
		if err != nil {
			return
		}

		switch input {
		case "/back":
			return
		case "/history":
			u.renderHistory(ctx, conv)
		default:
			if err := conv.Send(ctx, input); err != nil {
				u.warn.Printf("Send failed: %v\n", err)
				continue
			}
			u.renderHistory(ctx, conv)
		}
	}
}

func (u *ui) renderHistory(ctx context.Context, conv *chat.Conversation) {
	messages, err := conv.History(ctx)
	if err != nil {
		u.warn.Printf("Could not load history: %v\n", err)
		return
	}

	if len(messages) == 0 {
		u.faint.Println("(no messages yet)")
		return
	}

	for _, msg := range messages {
		speaker := u.them
		if msg.Sender == u.sess.Username() {
			speaker = u.me
		}
		u.faint.Printf("[%s] ", msg.SentAt.Local().Format("15:04"))
		speaker.Printf("%s: ", msg.Sender)
		fmt.Println(msg.Body)
	}
}
