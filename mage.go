//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	jetOutput          = "gen"
	schemaFileLocation = "schema.sqlite"
	engineBin          = "./bin/jassrating"
	engineConfig       = "configs/engine.toml"
)

const (
	toolsDir     = "tools/"
	toolsModfile = toolsDir + "go.mod"
	toolsBinDir  = toolsDir + "bin/"
	lintTool     = toolsBinDir + "golangci-lint"
	jetTool      = toolsBinDir + "jet"
)

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds the engine binary
func Build() error {
	mg.Deps(goModDownload)
	return sh.Run("go", "build", "-o", engineBin, "./cmd")
}

// Serve starts the read api
func Serve() error {
	mg.Deps(Build)
	return sh.Run(engineBin, "-config", engineConfig, "serve")
}

// Rebuild replays every scope and replaces the derived state
func Rebuild() error {
	mg.Deps(Build)
	return sh.Run(engineBin, "-config", engineConfig, "rebuild", "all", "--confirm")
}

// Audit checks every player of the global scope
func Audit() error {
	mg.Deps(Build)
	return sh.Run(engineBin, "-config", engineConfig, "audit", "global")
}

// GenJet regenerates the query builder from a freshly migrated schema
func GenJet() error {
	mg.Deps(Build, buildJetTool)
	if err := os.Remove(schemaFileLocation); err != nil && !os.IsNotExist(err) {
		return err
	}
	defer os.Remove(schemaFileLocation)
	if err := migrateSchema(); err != nil {
		return err
	}
	return sh.Run(jetTool, "-source", "sqlite", "-dsn", schemaFileLocation, "-path", jetOutput)
}

// migrateSchema opens an empty database with the engine, which applies every migration.
func migrateSchema() error {
	cfg, err := os.CreateTemp("", "jassrating-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(cfg.Name())
	_, err = cfg.WriteString("[storage]\nsqlite_file = \"" + schemaFileLocation + "\"\n")
	if cerr := cfg.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return sh.Run(engineBin, "-config", cfg.Name(), "players", "global")
}

func buildJetTool() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-modfile", toolsModfile, "-o", jetTool, "github.com/go-jet/jet/v2/cmd/jet")
}

func Lint() error {
	mg.Deps(buildLintTool)
	return sh.Run(lintTool, "run", "./...")
}

func buildLintTool() error {
	return sh.Run(
		"go", "build",
		"-modfile", toolsModfile,
		"-o", lintTool,
		"github.com/golangci/golangci-lint/cmd/golangci-lint",
	)
}

// Test runs every package test
func Test() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "test", "-race", "./...")
}
