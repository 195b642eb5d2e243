package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mercprd/internal/cli"
	"mercprd/internal/config"
	"mercprd/internal/database"
	"mercprd/internal/logging"
	"mercprd/internal/repositories"
	"mercprd/internal/seed"
	"mercprd/internal/services"
)

type flags struct {
	ConfigFile string
	SeedFile   string
	Debug      bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("mercprd", flag.ContinueOnError)
	fs.StringVar(&f.ConfigFile, "config", "", "Path to a config file (yaml, json, toml or env)")
	fs.StringVar(&f.SeedFile, "seed", "", "INI file with products to import before the menu starts")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// application holds the resources shared by the menu for one run.
type application struct {
	db        *gorm.DB
	log       *logrus.Logger
	logCloser io.Closer
	accounts  *services.AccountService
	products  *services.ProductService
}

// newApp opens the store, applies the schema and wires the services.
func newApp(cfg *config.Config) (*application, error) {
	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DatabaseDSN, logging.GormLogger(logger))
	if err != nil {
		closer.Close()
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		closer.Close()
		return nil, err
	}
	driver, _ := database.ParseDSN(cfg.DatabaseDSN)
	logger.WithField("driver", string(driver)).Info("store ready")

	accountRepo := repositories.NewGORMAccountRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	return &application{
		db:        db,
		log:       logger,
		logCloser: closer,
		accounts:  services.NewAccountService(accountRepo, services.NewBcryptHasher(cfg.PasswordCost), logger),
		products:  services.NewProductService(productRepo, logger),
	}, nil
}

// Close releases the store handle and the log file.
func (a *application) Close() error {
	err := database.Close(a.db)
	if cerr := a.logCloser.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *application) menu(in io.Reader, out io.Writer) *cli.App {
	return cli.New(cli.Options{
		In:       in,
		Out:      out,
		Accounts: a.accounts,
		Products: a.products,
		Log:      a.log,
	})
}

func run(args []string, in io.Reader, out io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		return err
	}
	if f.Debug {
		cfg.LogLevel = "debug"
	}

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if f.SeedFile != "" {
		created, err := seed.Import(app.products, f.SeedFile, app.log)
		fmt.Fprintf(out, "%d produto(s) importado(s) de %s.\n", created, f.SeedFile)
		if err != nil {
			fmt.Fprintf(out, "Alguns produtos não foram importados:\n%v\n", err)
		}
	}

	return app.menu(in, out).Run()
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mercprd: %v\n", err)
		os.Exit(1)
	}
}
