package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Katas lists the katas available for solving.
func (a *App) Katas(ctx context.Context) error {
	katas, err := a.client.SearchKatas(ctx)
	if err != nil {
		printlnFn("Failed to load katas:", err.Error())
		return err
	}
	if len(katas) == 0 {
		printlnFn("No katas found")
		return nil
	}

	for _, k := range katas {
		printlnFn(fmt.Sprintf("%4d  [%s, %d kyu] %s (%s)", k.ID, k.Language, k.Difficulty, k.Title, k.Type))
	}
	return nil
}

// Kata shows a single kata: the snippet plus its answer options. The id
// comes from the command argument or an interactive prompt.
func (a *App) Kata(ctx context.Context, args []string) error {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		line, err := getSimpleText(a.reader, "Enter kata id", os.Stdout)
		if err != nil {
			return err
		}
		raw = line
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("Invalid kata id:", raw)
		return err
	}

	kata, err := a.client.GetKata(ctx, id)
	if err != nil {
		printlnFn("Failed to load kata:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s, %d kyu, %s)", kata.Title, kata.Language, kata.Difficulty, kata.Type))
	if kata.Description != "" {
		printlnFn(kata.Description)
	}
	if kata.SourceCode != "" {
		printlnFn("")
		printlnFn(kata.SourceCode)
	}
	for _, opt := range kata.AnswerOptions {
		printlnFn(fmt.Sprintf("  %d) %s", opt.OptionID, opt.Option))
	}
	return nil
}
