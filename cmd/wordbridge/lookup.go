package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aomurata/wordbridge/internal/dictionary"
)

// noopStats satisfies the stats dependency for offline CLI lookups, which
// should not touch the database.
type noopStats struct{}

func (noopStats) Find(context.Context, string) (*dictionary.LookupStats, error) { return nil, nil }
func (noopStats) FindAll(context.Context) ([]dictionary.LookupStats, error)     { return nil, nil }
func (noopStats) Record(context.Context, string, time.Time) error               { return nil }

func newLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a word in the dictionary file and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			entries, err := dictionary.LoadFile(cfg.Dictionary.Path)
			if err != nil {
				return fmt.Errorf("dictionary.LoadFile() > %w", err)
			}
			dict := dictionary.NewService(entries, noopStats{}, zerolog.Nop())

			entry := dict.Get(args[0])
			if entry == nil {
				fmt.Printf("%q is not in the dictionary.\n", args[0])
				if suggestions := dict.FuzzyMatch(args[0], 5); len(suggestions) > 0 {
					fmt.Println("Did you mean:")
					for _, suggestion := range suggestions {
						fmt.Printf("  %s\n", color.CyanString(suggestion))
					}
				}
				return nil
			}

			printEntry(entry)
			return nil
		},
	}
}

func printEntry(entry *dictionary.Entry) {
	bold := color.New(color.Bold)
	bold.Println(entry.Word)
	if entry.Pronunciation != "" {
		fmt.Printf("  /%s/\n", entry.Pronunciation)
	}
	for i, definition := range entry.Definitions {
		fmt.Printf("  %d. %s %s\n", i+1, color.YellowString("(%s)", definition.PartOfSpeech), definition.Meaning)
		for _, example := range definition.Examples {
			fmt.Printf("     %s\n", color.New(color.Faint).Sprint(example))
		}
	}
	if len(entry.Synonyms) > 0 {
		fmt.Printf("  synonyms: %s\n", color.GreenString("%v", entry.Synonyms))
	}
	if len(entry.Antonyms) > 0 {
		fmt.Printf("  antonyms: %s\n", color.RedString("%v", entry.Antonyms))
	}
}
