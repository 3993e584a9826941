// Command birthday_ppt generates birthday decks without the desktop window.
//
//	birthday_ppt generate -excel birthdays.xlsx -out ./decks
//	birthday_ppt check -excel birthdays.xlsx [-dump] [-month 1]
//	birthday_ppt inspect [-template template.pptx]
//	birthday_ppt template out.pptx
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"birthdayppt/birthday"
	"birthdayppt/config"
	"birthdayppt/export"
	"birthdayppt/i18n"
	"birthdayppt/logger"
	"birthdayppt/pptx"
	"birthdayppt/sheet"
)

const usage = `Usage: birthday_ppt <command> [flags]

Commands:
  generate   build the month's deck from a birthday sheet
  check      validate a birthday sheet and list the people in it
  inspect    describe a template's slides and shapes
  template   write the bundled template to a file
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cfg := loadConfig(stderr)
	i18n.SyncLanguage(cfg.Language)

	var err error
	switch args[0] {
	case "generate":
		err = runGenerate(args[1:], cfg, stdout, stderr, now)
	case "check":
		err = runCheck(args[1:], stdout, stderr, now)
	case "inspect":
		err = runInspect(args[1:], cfg, stdout, stderr)
	case "template":
		err = runTemplate(args[1:], stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// loadConfig reads ~/BirthdayPPT/config.json and .env overrides. Problems
// fall back to the defaults.
func loadConfig(stderr io.Writer) config.Config {
	dir, err := config.DefaultStorageDir()
	if err != nil {
		fmt.Fprintln(stderr, "Warning:", err)
		return config.ApplyEnv(config.Default(""), nil)
	}
	if err := config.LoadEnvFiles(".env"); err != nil {
		fmt.Fprintln(stderr, "Warning:", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintln(stderr, "Warning:", err)
		cfg = config.Default(dir)
	}
	return config.ApplyEnv(cfg, nil)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func runGenerate(args []string, cfg config.Config, stdout, stderr io.Writer, now func() time.Time) error {
	fs := newFlagSet("generate", stderr)
	excel := fs.String("excel", "", "birthday sheet (.xlsx, .xlsm, .xls)")
	out := fs.String("out", ".", "directory the deck is saved to")
	tmpl := fs.String("template", cfg.TemplatePath, "template .pptx (empty for the bundled one)")
	font := fs.String("font", cfg.FontFamily, "font family forced on every run")
	verbose := fs.Bool("v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *excel == "" {
		return fmt.Errorf("-excel is required")
	}

	log := logger.NewLogger()
	if *verbose {
		log.SetConsole(stderr)
		log.SetDebug(true)
	}
	defer log.Close()

	vt, err := birthday.ValidateFile(*excel)
	if err != nil {
		return err
	}
	people := birthday.Extract(vt, now())
	if len(people) == 0 {
		return errors.New(i18n.T("app.no_birthdays"))
	}

	cfg.TemplatePath = *tmpl
	cfg.FontFamily = *font
	cfg.DetailedLog = cfg.DetailedLog || *verbose
	path, err := export.NewBirthdayPPTService(cfg, log).GeneratePPT(int(vt.Month), people, *out)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, i18n.T("generate.success", path))
	return nil
}

func runCheck(args []string, stdout, stderr io.Writer, now func() time.Time) error {
	fs := newFlagSet("check", stderr)
	excel := fs.String("excel", "", "birthday sheet (.xlsx, .xlsm, .xls)")
	dump := fs.Bool("dump", false, "print the raw sheet cells first")
	month := fs.Int("month", 0, "list only the people born in this month (1-12)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *excel == "" {
		return fmt.Errorf("-excel is required")
	}
	if *month < 0 || *month > 12 {
		return fmt.Errorf("-month must be between 1 and 12, got %d", *month)
	}

	if *dump {
		table, err := sheet.Read(*excel)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "=== Sheet: %s ===\n", table.Name)
		fmt.Fprintln(stdout, strings.Join(table.Header, " | "))
		for _, row := range table.Rows {
			fmt.Fprintln(stdout, strings.Join(row, " | "))
		}
		fmt.Fprintln(stdout)
	}

	vt, err := birthday.ValidateFile(*excel)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, i18n.T("validate.success"))
	people := birthday.Extract(vt, now())
	shown := vt.Month
	if *month != 0 {
		shown = time.Month(*month)
		people = birthday.ByMonth(people, shown)
	}
	if len(people) == 0 {
		fmt.Fprintln(stdout, i18n.T("app.no_birthdays"))
		return nil
	}
	fmt.Fprintln(stdout, i18n.T("app.month_detected", int(shown)))
	for _, p := range people {
		fmt.Fprintf(stdout, "%s\t%s\t%s\t%d\n", p.Name, p.Gender, p.BirthDate.Format(birthday.DateLayout), p.Age)
	}
	return nil
}

func runInspect(args []string, cfg config.Config, stdout, stderr io.Writer) error {
	fs := newFlagSet("inspect", stderr)
	tmpl := fs.String("template", cfg.TemplatePath, "template .pptx (empty for the bundled one)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		pkg *pptx.Package
		err error
	)
	if *tmpl == "" {
		data, buildErr := export.BuildDefaultTemplate()
		if buildErr != nil {
			return buildErr
		}
		pkg, err = pptx.OpenBytes(data)
	} else {
		pkg, err = pptx.Open(*tmpl)
	}
	if err != nil {
		return err
	}
	d, err := pkg.Deck()
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, export.InspectTemplate(d))
	return nil
}

func runTemplate(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: birthday_ppt template <out.pptx>")
	}
	data, err := export.BuildDefaultTemplate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Fprintln(stdout, args[0])
	return nil
}
