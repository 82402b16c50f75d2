package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/matst80/slask-facets/pkg/config"
	"github.com/matst80/slask-facets/pkg/facets"
	"github.com/matst80/slask-facets/pkg/query"
)

var configFile = flag.String("config", "storefront.yaml", "path to the yaml config file")

const usage = `commands:
  min <value>   edit the "From" field
  max <value>   edit the "To" field
  show          print the field contents
  quit`

// Reads commands from stdin and prints every URL the price range settles on.
func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pricerange [-config file] <url>")
		os.Exit(2)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	start, err := url.Parse(flag.Arg(0))
	if err != nil {
		log.Fatalf("Invalid url: %v", err)
	}

	navigated := make(chan string, 1)
	controller := facets.NewPriceRangeController(query.Parse(start.RawQuery), start.Path, cfg.PriceDebounce(), func(href string) {
		navigated <- href
	})
	defer controller.Stop()

	go func() {
		for href := range navigated {
			fmt.Printf("navigate %s\n", href)
		}
	}()

	fmt.Println(usage)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, value, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "min":
			controller.SetMinText(strings.TrimSpace(value))
		case "max":
			controller.SetMaxText(strings.TrimSpace(value))
		case "show":
			min, max := controller.Text()
			fmt.Printf("from=%q to=%q\n", min, max)
		case "quit":
			return
		case "":
		default:
			fmt.Println(usage)
		}
	}
}
