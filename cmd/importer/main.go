package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/matst80/slask-facets/pkg/catalog"
	"github.com/matst80/slask-facets/pkg/common/jsoncompat"
	"github.com/matst80/slask-facets/pkg/config"
	"github.com/matst80/slask-facets/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

var configFile = flag.String("config", "storefront.yaml", "path to the yaml config file")
var source = flag.String("file", "", "json file with the collections to import")

// Replaces the stored collections of a country and tells running storefronts
// to reload them.
func main() {
	flag.Parse()
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if *source == "" {
		log.Fatalf("No source file, use -file")
	}
	data, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("Could not read %s: %v", *source, err)
	}
	var collections []catalog.Collection
	if err := jsoncompat.Unmarshal(data, &collections); err != nil {
		log.Fatalf("Could not decode %s: %v", *source, err)
	}

	store := catalog.NewFileCatalog(cfg.Country, cfg.DataDir)
	if err := store.Save(collections); err != nil {
		log.Fatalf("Failed to save collections: %v", err)
	}

	if cfg.RabbitUrl == "" {
		log.Printf("No rabbit url, skipping change notification")
		return
	}
	conn, err := amqp.Dial(cfg.RabbitUrl)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	if err := messaging.DefineTopic(ch, cfg.Country, messaging.CatalogChanged); err != nil {
		log.Fatalf("Failed to declare %s topic: %v", messaging.CatalogChanged, err)
	}
	ch.Close()

	handles := make([]string, 0, len(collections))
	for _, c := range collections {
		handles = append(handles, c.Handle)
	}
	if err := messaging.SendChange(context.Background(), conn, cfg.Country, messaging.CatalogChanged, messaging.CatalogChange{Handles: handles}); err != nil {
		log.Fatalf("Failed to send change: %v", err)
	}
	log.Printf("Imported %d collections for %s", len(collections), cfg.Country)
}
