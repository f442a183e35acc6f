package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"WishlistX/internal/cli/bootstrap"
	"WishlistX/internal/config"

	"golang.org/x/term"
)

// openApp собирает зависимости клиента; подменяется в тестах при необходимости.
var openApp = bootstrap.New

// success печатает строку об успешном действии.
func success(format string, a ...any) {
	fmt.Fprintf(Out, "✓ "+format+"\n", a...)
}

// failure печатает строку о неудаче, не прерывая работу (browse).
func failure(format string, a ...any) {
	fmt.Fprintf(Out, "× "+format+"\n", a...)
}

// newFlags создаёт FlagSet команды, который не пишет в stderr и не завершает процесс.
func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags разбирает флаги в любом месте списка аргументов и возвращает позиционные.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var rest []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, ErrUsage
		}
		args = fs.Args()
		if len(args) == 0 {
			return rest, nil
		}
		rest = append(rest, args[0])
		args = args[1:]
	}
}

// parseID разбирает положительный идентификатор.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

// prompt печатает вопрос и читает одну строку из In.
func prompt(r *bufio.Reader, question string) (string, bool) {
	fmt.Fprint(Out, question)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// terminalFD возвращает дескриптор In, если это терминал.
var terminalFD = func(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

var readPassword = term.ReadPassword

// promptSecret читает пароль без эха; если In не терминал, читает строку как prompt.
func promptSecret(r *bufio.Reader, question string) (string, bool) {
	fd, ok := terminalFD(In)
	if !ok {
		return prompt(r, question)
	}
	fmt.Fprint(Out, question)
	b, err := readPassword(fd)
	fmt.Fprintln(Out)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// confirm спрашивает подтверждение [y/N]; assumeYes пропускает вопрос.
func confirm(question string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	answer, ok := prompt(bufio.NewReader(In), question+" [y/N]: ")
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}

// withApp открывает зависимости на время выполнения fn.
func withApp(ctx context.Context, cfg *config.Config, fn func(app *bootstrap.App) error) error {
	app, cleanup, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()
	return fn(app)
}
