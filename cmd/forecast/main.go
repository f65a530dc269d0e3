package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"fmt"
	"os"
)

// @title DataPoint Forecast API
// @version 1.0
// @description Runs the Met Office DataPoint forecast ETL and serves its outputs
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
