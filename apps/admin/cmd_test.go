package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/elimusoft/elimu/core/user"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	return &commandLine{
		db:     &sqlx.DB{},
		usrSvc: user.NewService(inmemdb.NewUserRepository(inmemdb.Open())),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func runCases(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				if tt.wantErr != nil || tt.wantErrStr != "" {
					t.Errorf("cli.run() error = nil, want %v%s", tt.wantErr, tt.wantErrStr)
				}
				return
			}
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
				}
			} else {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("Str0ngPwd"), nil }

	runCases(t, cli, []cliTest{
		{name: "no args", args: nil, wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "adduser: missing flags", args: []string{"adduser"}, wantErr: errHelp},
		{name: "adduser", args: []string{
			"adduser", "-username", "amina", "-fullname", "Amina Okoro", "-email", "amina@school.test",
		}},
		{name: "resetpassword: missing flags", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "resetpassword", args: []string{"resetpassword", "-username", "amina"}},
		{name: "resetpassword: unknown user", args: []string{"resetpassword", "-username", "ghost"},
			wantErr: user.ErrNotFound},
	})

	usr, err := cli.usrSvc.GetByUsername("amina")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if !usr.IsAdmin() {
		t.Errorf("role = %q; want default admin", usr.Role)
	}
	if err = usr.CheckPassword("Str0ngPwd"); err != nil {
		t.Errorf("CheckPassword failed: %v", err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "down", "redo", "status", "version": // pass
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCases(t, cli, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	})
}
