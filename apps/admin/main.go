package main

import (
	"log"
	"os"

	"github.com/trezcool/centro/core"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	validate, _ := core.NewValidate()

	// start CLI
	cli := commandLine{
		conf:     conf,
		in:       os.Stdin,
		validate: validate,
	}
	err := cli.run(os.Args, os.Stdout)
	if cerr := cli.close(); cerr != nil {
		logger.Printf("closing database: %v", cerr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
