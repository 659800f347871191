package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"catalog/admin"
	"catalog/client"
	"catalog/config"

	"github.com/mattn/go-isatty"
)

const usage = `Usage: admin <command> [arguments]

Commands:
  dashboard                      catalog summary
  products [--page --limit --search --category]
  product <id>                   show one product
  add --name --price [--description --category --stock --image]
  edit <id> [--name --price --description --category --stock --image]
  delete <id>
  categories
  category-add --name [--description]
  category-edit <id> [--name --description]
  category-delete <id>
  upload <file> [--product <id>] upload an image, optionally attaching it
  theme [toggle]                 show or flip the light/dark theme
  watch                          print changes as they happen
`

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	terminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	err := run(ctx, config.LoadClient(), os.Args[1], os.Args[2:], os.Stdout, terminal)
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	case err != nil:
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.ClientConfig, cmd string, args []string, out io.Writer, terminal bool) error {
	statePath := cfg.StatePath
	if statePath == "" {
		p, err := client.DefaultStatePath()
		if err != nil {
			return fmt.Errorf("locate state file: %w", err)
		}
		statePath = p
	}
	themes := client.NewThemeStore(client.NewFileStorage(statePath))
	if _, err := themes.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "theme: %v\n", err)
	}

	console := admin.New(client.New(cfg.APIURL), out, admin.NewPalette(themes.Theme(), terminal))

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	arg, rest := positional(args)

	switch cmd {
	case "dashboard":
		return console.Dashboard(ctx)

	case "products":
		var q client.ProductQuery
		fs.IntVar(&q.Page, "page", 1, "page number")
		fs.IntVar(&q.Limit, "limit", 10, "products per page")
		fs.StringVar(&q.Search, "search", "", "match name or description")
		fs.StringVar(&q.Category, "category", "", "exact category label")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		return console.ProductList(ctx, q)

	case "product":
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		return console.ProductDetail(ctx, id)

	case "add", "edit":
		var id uint
		if cmd == "edit" {
			var err error
			if id, err = parseID(arg); err != nil {
				return err
			}
			args = rest
		}
		fields, err := productFlags(fs, args)
		if err != nil {
			return err
		}
		return console.ProductForm(ctx, id, fields)

	case "delete":
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		return console.ProductDelete(ctx, id)

	case "categories":
		return console.CategoryList(ctx)

	case "category-add", "category-edit":
		var id uint
		if cmd == "category-edit" {
			var err error
			if id, err = parseID(arg); err != nil {
				return err
			}
			args = rest
		}
		fields, err := categoryFlags(fs, args)
		if err != nil {
			return err
		}
		return console.CategoryForm(ctx, id, fields)

	case "category-delete":
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		return console.CategoryDelete(ctx, id)

	case "upload":
		product := fs.Uint("product", 0, "product to attach the image to")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		file := arg
		if file == "" {
			file = fs.Arg(0)
		}
		if file == "" {
			return errUsage
		}
		return console.UploadImage(ctx, file, *product)

	case "theme":
		toggle := arg == "toggle"
		if arg != "" && !toggle {
			return errUsage
		}
		return console.Theme(themes, toggle, terminal)

	case "watch":
		return console.Watch(ctx)
	}
	return errUsage
}

// positional splits a leading non-flag argument from the rest.
func positional(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, errUsage
	}
	return uint(id), nil
}

// productFlags reports only the flags given on the command line, so an edit
// leaves every other field alone.
func productFlags(fs *flag.FlagSet, args []string) (admin.ProductFields, error) {
	fs.String("name", "", "product name")
	fs.String("description", "", "description")
	fs.String("price", "", "price, greater than 0")
	fs.String("category", "", "category label")
	fs.String("stock", "", "units in stock")
	fs.String("image", "", "image URL")
	if err := fs.Parse(args); err != nil {
		return admin.ProductFields{}, errUsage
	}

	var f admin.ProductFields
	fs.Visit(func(fl *flag.Flag) {
		v := fl.Value.String()
		switch fl.Name {
		case "name":
			f.Name = &v
		case "description":
			f.Description = &v
		case "price":
			f.Price = &v
		case "category":
			f.Category = &v
		case "stock":
			f.Stock = &v
		case "image":
			f.ImageURL = &v
		}
	})
	return f, nil
}

func categoryFlags(fs *flag.FlagSet, args []string) (admin.CategoryFields, error) {
	fs.String("name", "", "category name")
	fs.String("description", "", "description")
	if err := fs.Parse(args); err != nil {
		return admin.CategoryFields{}, errUsage
	}

	var f admin.CategoryFields
	fs.Visit(func(fl *flag.Flag) {
		v := fl.Value.String()
		switch fl.Name {
		case "name":
			f.Name = &v
		case "description":
			f.Description = &v
		}
	})
	return f, nil
}
