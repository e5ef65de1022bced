package main

import (
	"github.com/elimusoft/elimu/core"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)

	usr, err := cli.usrSvc.GetByUsername(uname)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.ChangePassword(usr.ID, pwd)
	return err
}
