package main

import (
	"fmt"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/account"
)

// addAccount registers a new account.Account.
func (cli *commandLine) addAccount(name, email, pwd, role string) error {
	acct, err := cli.acctSvc.Register(account.NewAccount{
		Name:     core.CleanString(name),
		Email:    core.CleanString(email),
		Password: pwd,
		Role:     core.CleanString(role, true /* lower */),
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %s account %s (%s)\n", acct.Role, acct.Email, acct.ID)
	return nil
}

func (cli *commandLine) listAccounts() error {
	accts, err := cli.acctSvc.QueryAll()
	if err != nil {
		return err
	}
	for _, a := range accts {
		fmt.Printf("%s\t%s\t%s\t%s\n", a.ID, a.Role, a.Email, a.Name)
	}
	return nil
}
