package main

import (
	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/user"
)

// addUser creates a user account, or resets the password if the username is taken.
func (cli *commandLine) addUser(uname, fullName, email, role, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrSvc.GetByUsername(uname)
	if err == nil {
		_, err = cli.usrSvc.ChangePassword(usr.ID, pwd)
		return err
	}
	if err != user.ErrNotFound {
		return err
	}

	_, err = cli.usrSvc.Register(user.NewUser{
		Username: uname,
		Password: pwd,
		FullName: fullName,
		Email:    email,
		Role:     role,
	})
	return err
}
