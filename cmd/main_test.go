package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/goserg/jassrating/internal/rebuild"
)

func Test_parseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantPos     []string
		wantConfirm bool
		wantPlayer  string
		wantErr     bool
	}{
		{name: "flag after scope", args: []string{"g1", "--confirm"}, wantPos: []string{"g1"}, wantConfirm: true},
		{name: "flag before scope", args: []string{"-confirm", "g1"}, wantPos: []string{"g1"}, wantConfirm: true},
		{name: "value flag", args: []string{"g1", "--player", "Anna"}, wantPos: []string{"g1"}, wantPlayer: "Anna"},
		{name: "two positionals", args: []string{"g1", "out.json"}, wantPos: []string{"g1", "out.json"}},
		{name: "unknown flag", args: []string{"g1", "--force"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			confirm := fs.Bool("confirm", false, "")
			player := fs.String("player", "", "")
			got, err := parseArgs(fs, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errUsage) {
					t.Errorf("parseArgs() error = %v, want errUsage", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.wantPos) {
				t.Errorf("parseArgs() = %v, want %v", got, tt.wantPos)
			}
			if *confirm != tt.wantConfirm || *player != tt.wantPlayer {
				t.Errorf("flags = %v %q, want %v %q", *confirm, *player, tt.wantConfirm, tt.wantPlayer)
			}
		})
	}
}

func Test_printRebuild(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name    string
		report  rebuild.Report
		want    []string
		notWant []string
	}{
		{
			name:    "incomplete run shows its id",
			report:  rebuild.Report{RunID: id, Scope: "g1", Parents: 4},
			want:    []string{"rebuilt g1: 4 parents", "run " + id.String()},
			notWant: []string{"nothing written"},
		},
		{
			name:    "dry run has no run",
			report:  rebuild.Report{Scope: "g1", DryRun: true},
			want:    []string{"dry run g1"},
			notWant: []string{"  run "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printRebuild(&out, tt.report)
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("printRebuild() = %q, want %q", out.String(), w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out.String(), w) {
					t.Errorf("printRebuild() = %q, must not contain %q", out.String(), w)
				}
			}
		})
	}
}
