// ABOUTME: Admin CLI for the chatbot gateway user roster and stats
// ABOUTME: Scriptable counterpart to the TUI with typed delete confirmation

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/2389/chatbot-console/internal/console"
	"github.com/2389/chatbot-console/internal/gateway"
	"github.com/2389/chatbot-console/internal/history"
	"github.com/2389/chatbot-console/internal/roster"
	"github.com/2389/chatbot-console/internal/session"
)

const banner = `
      _           _   _           _
  ___| |__   __ _| |_| |__   ___ | |_
 / __| '_ \ / _' | __| '_ \ / _ \| __|
| (__| | | | (_| | |_| |_) | (_) | |_
 \___|_| |_|\__,_|\__|_.__/ \___/ \__|  admin
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	baseURL := os.Getenv("CHATBOT_GATEWAY_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	sess := session.NewFromEnv()
	defer sess.Close()
	client := gateway.New(baseURL, sess)

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "status":
		err = cmdStatus(client, sess)
	case "orgs":
		err = cmdOrgs(client)
	case "users":
		err = cmdUsers(client, args)
	case "stats":
		err = cmdStats(client)
	case "questions":
		err = cmdQuestions(client, args)
	case "chat":
		err = cmdChat(client, args)
	case "audit":
		err = cmdAudit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: chatbot-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  status                        Show gateway reachability and your identity")
	fmt.Println("  orgs                          List organizations")
	fmt.Println("  users list --org <org>        List users in an organization")
	fmt.Println("  users create --org <org> --name <n> [--password <p>] [--text <t>]")
	fmt.Println("  users delete <name> --org <org>")
	fmt.Println("  users delete-all --org <org>  Delete every user (typed confirmation)")
	fmt.Println("  users modify <name> --text <t>  Replace a user's training text")
	fmt.Println("  stats                         Show per-organization embedding stats")
	fmt.Println("  questions <user>              Show a user's static question/answer pairs")
	fmt.Println("  chat <user> --org <org> <msg> Send one chat turn")
	fmt.Println("  audit [--org <org>]           Show the local action log")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  CHATBOT_GATEWAY_URL    Gateway base URL (default: http://localhost:8000)")
	fmt.Println("  CHATBOT_TOKEN          Bearer token (or ~/.config/chatbot-console/token)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  export CHATBOT_TOKEN=\"eyJhbG...\"")
	fmt.Println("  chatbot-admin users list --org finance")
	fmt.Println("  chatbot-admin chat alice --org finance \"what are your opening hours?\"")
	fmt.Println()
}

// flagValue extracts --name style values from args.
func flagValue(args []string, names ...string) string {
	for i := 0; i < len(args)-1; i++ {
		for _, name := range names {
			if args[i] == name {
				return args[i+1]
			}
		}
	}
	return ""
}

// positional returns the first argument that is not a flag or a flag
// value.
func positional(args []string) string {
	skip := false
	for _, arg := range args {
		if skip {
			skip = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			skip = true
			continue
		}
		return arg
	}
	return ""
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// cmdStatus shows gateway reachability and the token's identity.
func cmdStatus(client *gateway.Client, sess *session.Session) error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()

	ctx, cancel := requestContext()
	defer cancel()

	orgs, err := client.ListOrganizations(ctx)
	if err != nil {
		yellow.Printf("  Gateway:  ")
		color.Red("UNREACHABLE (%v)\n", err)
		return nil
	}
	green.Printf("  Gateway:  ")
	fmt.Printf("connected to %s (%d organizations)\n", client.BaseURL(), len(orgs))

	if sess.Authenticated() {
		identity := sess.Identity()
		green.Printf("  Identity: ")
		name := identity.Name
		if name == "" {
			name = "(unnamed token)"
		}
		if identity.Admin {
			fmt.Printf("%s (admin)\n", name)
		} else {
			fmt.Printf("%s\n", name)
		}
		if !identity.ExpiresAt.IsZero() {
			fmt.Printf("  Expires:  %s\n", identity.ExpiresAt.Format(time.RFC3339))
		}
	} else {
		yellow.Printf("  Identity: ")
		fmt.Printf("(no token - set %s)\n", session.TokenEnvVar)
	}

	fmt.Println()
	return nil
}

// cmdOrgs lists the organizations.
func cmdOrgs(client *gateway.Client) error {
	ctx, cancel := requestContext()
	defer cancel()

	orgs, err := client.ListOrganizations(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Organizations")
	cyan.Println("  -------------")
	if len(orgs) == 0 {
		fmt.Println("  (none)")
	}
	for _, org := range orgs {
		fmt.Printf("  %s\n", org)
	}
	fmt.Println()
	return nil
}

// cmdUsers dispatches the users subcommands.
func cmdUsers(client *gateway.Client, args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return cmdUsersList(client, args)
	case "create", "add":
		return cmdUsersCreate(client, args)
	case "delete", "rm", "remove":
		return cmdUsersDelete(client, args)
	case "delete-all":
		return cmdUsersDeleteAll(client, args)
	case "modify":
		return cmdUsersModify(client, args)
	default:
		return fmt.Errorf("unknown users subcommand: %s (use list, create, delete, delete-all, modify)", subcmd)
	}
}

func cmdUsersList(client *gateway.Client, args []string) error {
	org := flagValue(args, "--org", "-o")
	if org == "" {
		return fmt.Errorf("usage: users list --org <org>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	users, err := client.ListUsers(ctx, org)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  Users in %s\n", org)
	cyan.Println("  " + strings.Repeat("-", 9+len(org)))

	if len(users) == 0 {
		fmt.Println("  (no users)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tPASSWORD\tCREATED\tMODS")
	fmt.Fprintln(w, "  ----\t--------\t-------\t----")
	for _, user := range users {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\n",
			user.Name, user.Password, roster.FormatCreatedAt(user.CreatedAt), user.Modifications)
	}
	w.Flush()
	fmt.Println()
	return nil
}

func cmdUsersCreate(client *gateway.Client, args []string) error {
	org := flagValue(args, "--org", "-o")
	name := flagValue(args, "--name", "-n")
	if org == "" || name == "" {
		return fmt.Errorf("usage: users create --org <org> --name <name> [--password <p>] [--text <t>]")
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := client.CreateUser(ctx, gateway.CreateUserRequest{
		Name:         name,
		Password:     flagValue(args, "--password", "-p"),
		Text:         flagValue(args, "--text", "-t"),
		Organization: org,
	})
	if err != nil {
		return err
	}

	color.Green("✓ Created user: %s\n", user.Name)
	return nil
}

func cmdUsersDelete(client *gateway.Client, args []string) error {
	name := positional(args)
	org := flagValue(args, "--org", "-o")
	if name == "" || org == "" {
		return fmt.Errorf("usage: users delete <name> --org <org>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := client.DeleteUser(ctx, name, org); err != nil {
		return err
	}

	color.Green("✓ Deleted user: %s\n", name)
	return nil
}

// cmdUsersDeleteAll removes every user in an organization. The exact
// confirmation phrase must be typed on stdin before the call fires.
func cmdUsersDeleteAll(client *gateway.Client, args []string) error {
	org := flagValue(args, "--org", "-o")
	if org == "" {
		return fmt.Errorf("usage: users delete-all --org <org>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	users, err := client.ListUserNames(ctx, org)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Printf("No users in %s\n", org)
		return nil
	}

	phrase := console.ConfirmPhrase(len(users), org)
	color.Yellow("This removes %d users from %s and cannot be undone.", len(users), org)
	fmt.Printf("Type %q to confirm: ", phrase)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != phrase {
		return fmt.Errorf("confirmation did not match, aborted")
	}

	if err := client.DeleteAllUsers(ctx, org); err != nil {
		return err
	}

	color.Green("✓ Deleted %d users from %s\n", len(users), org)
	return nil
}

func cmdUsersModify(client *gateway.Client, args []string) error {
	name := positional(args)
	text := flagValue(args, "--text", "-t")
	if name == "" || text == "" {
		return fmt.Errorf("usage: users modify <name> --text <text>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := client.UpdateTrainingText(ctx, name, text); err != nil {
		return err
	}

	color.Green("✓ Updated training text for %s\n", name)
	return nil
}

// cmdStats prints the embedding stats table with the aggregate last.
func cmdStats(client *gateway.Client) error {
	ctx, cancel := requestContext()
	defer cancel()

	stats, err := client.GetEmbeddingStats(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Embedding Stats")
	cyan.Println("  ---------------")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ORGANIZATION\tSIZE (MB)\tEMBEDDINGS")
	fmt.Fprintln(w, "  ------------\t---------\t----------")
	for _, name := range stats.OrgNames() {
		org := stats.Organizations[name]
		fmt.Fprintf(w, "  %s\t%.2f\t%d\n", name, org.TotalSizeMB, org.TotalEmbeddings)
	}
	fmt.Fprintf(w, "  TOTAL\t%.2f\t%d\n", stats.Total.TotalSizeMB, stats.Total.TotalEmbeddings)
	w.Flush()
	fmt.Println()
	return nil
}

// cmdQuestions prints a user's static question/answer pairs.
func cmdQuestions(client *gateway.Client, args []string) error {
	user := positional(args)
	if user == "" {
		return fmt.Errorf("usage: questions <user>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	pairs, err := client.StaticQuestions(ctx, user)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  Static answers for %s\n", user)
	fmt.Println()

	if len(pairs) == 0 {
		fmt.Println("  (no static questions)")
		fmt.Println()
		return nil
	}

	bold := color.New(color.Bold)
	for _, pair := range pairs {
		bold.Printf("  Q: %s\n", pair.Question)
		fmt.Printf("  A: %s\n\n", pair.Answer)
	}
	return nil
}

// cmdChat sends a single chat turn and prints the reply.
func cmdChat(client *gateway.Client, args []string) error {
	user := positional(args)
	org := flagValue(args, "--org", "-o")
	if user == "" || org == "" {
		return fmt.Errorf("usage: chat <user> --org <org> <message>")
	}

	// The message is everything after the flags and the user name.
	var message string
	rest := args
	for i, arg := range rest {
		if arg == user {
			rest = rest[i+1:]
			break
		}
	}
	var parts []string
	skip := false
	for _, arg := range rest {
		if skip {
			skip = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			skip = true
			continue
		}
		parts = append(parts, arg)
	}
	message = strings.TrimSpace(strings.Join(parts, " "))
	if message == "" {
		return fmt.Errorf("usage: chat <user> --org <org> <message>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	turns := []gateway.Turn{{User: message}}
	reply, err := client.SendChatTurn(ctx, user, org, turns)
	if err != nil {
		return err
	}

	color.Green("bot: ")
	fmt.Println(reply)
	return nil
}

// cmdAudit lists the local action log.
func cmdAudit(args []string) error {
	dbPath := flagValue(args, "--db")
	if dbPath == "" {
		dbPath = defaultAuditPath()
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no audit log at %s (set audit.path in config or pass --db)", dbPath)
	}

	log, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, cancel := requestContext()
	defer cancel()

	entries, err := log.List(ctx, history.Filter{
		Organization: flagValue(args, "--org", "-o"),
	})
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Action Log")
	cyan.Println("  ----------")

	if len(entries) == 0 {
		fmt.Println("  (empty)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  WHEN\tACTOR\tACTION\tORG\tTARGET")
	fmt.Fprintln(w, "  ----\t-----\t------\t---\t------")
	for _, entry := range entries {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("Jan 02 15:04"),
			entry.Actor, entry.Action, entry.Organization, entry.Target)
	}
	w.Flush()
	fmt.Println()
	return nil
}

// defaultAuditPath mirrors the TUI's default audit location.
func defaultAuditPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "audit.db"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "chatbot-console", "audit.db")
}
