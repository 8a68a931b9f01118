package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/meusprojetos/minhasferramentas/pkg/prefs"
	"github.com/meusprojetos/minhasferramentas/pkg/session"
)

func main() {
	// Usage: go run *.go -grams 250 -price 12.50 [-db prefs.sqlite]

	gramsFlag := flag.String("grams", "", "Product weight in grams")
	priceFlag := flag.String("price", "", "Product price")
	dbFlag := flag.String("db", "", "Prefs SQLite file (in-memory when empty)")

	// Parse the command-line flags
	flag.Parse()

	var store prefs.Store = prefs.NewMemory()
	if *dbFlag != "" {
		db, err := prefs.Open(*dbFlag, prefs.DefaultDBTimeout)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		store = db
	}
	defer store.Close()

	ctx := context.Background()
	s := session.Open(ctx, store, session.Config{})
	defer s.Close(ctx)

	msg, err := s.Calculate(ctx, *gramsFlag, *priceFlag)
	fmt.Println(msg)
	if err != nil {
		return
	}
	fmt.Println(s.Render())
}
