package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/markpad/markpad/internal/editor"
	"github.com/markpad/markpad/internal/logger"
	"github.com/markpad/markpad/internal/server"
	"github.com/markpad/markpad/internal/store"
	"github.com/markpad/markpad/pkg/mdapi"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
)

const dbname = "markpad.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "markpad",
		Short:   "Markdown editor with local persistence and remote sync",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf := koanf.New(".")
			if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
				return err
			}

			return store.StormInit(dbnameWithPath(konf.String("database_path")))
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf := koanf.New(".")
			if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
				return err
			}

			primary := konf.String("endpoints.primary")
			if primary == "" {
				return errors.New("endpoints.primary not found")
			}
			fallback := konf.String("endpoints.fallback")
			if fallback == "" {
				fallback = primary
			}

			db, err := store.StormOpen(dbnameWithPath(konf.String("database_path")))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			client, err := mdapi.NewClient(
				&http.Client{Timeout: konf.Duration("endpoints.timeout")},
				primary,
				fallback,
			)
			if err != nil {
				return errors.Wrap(err, "could not build remote client")
			}

			logfile := konf.String("log_file")
			if logfile == "" {
				logfile = "markpad.log"
			}
			l := logger.New(logfile)

			scfg := editor.DefaultConfig()
			if d := konf.Duration("editor.render_delay"); d > 0 {
				scfg.RenderDelay = d
			}
			if d := konf.Duration("editor.autosave_delay"); d > 0 {
				scfg.AutosaveDelay = d
			}
			if konf.Exists("editor.autosave") {
				scfg.AutosaveEnabled = konf.Bool("editor.autosave")
			}

			session := editor.NewSession(db, scfg, l)
			defer session.Close()

			engine := server.EchoEngine(server.Controller{
				Version:    version,
				Database:   db,
				Session:    session,
				Supervisor: editor.NewSupervisor(session.Reset, l),
				Syncer:     editor.NewSyncer(client, l),
				Theme:      editor.NewThemeConfig(db),
			})
			server.PrintRoutes(engine)

			address := konf.String("address")
			message := "could not run server"
			log.Printf("Server listening on %s\n", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					log.Printf("Removing existing %s\n", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
