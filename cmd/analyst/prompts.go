package main

import (
	"fmt"

	"CryptoAnalyst/internal/collector"

	"github.com/AlecAivazis/survey/v2"
)

// askSymbol prompts for a ticker when none is given on the command line.
var askSymbol = func() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the ticker symbol (e.g., BTC-USD, ETH, SOL/USDT):",
		Default: "BTC-USD",
		Help:    "A bare ticker is quoted in USD",
	}
	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		s, _ := val.(string)
		if _, err := collector.NormalizeSymbol(s); err != nil {
			return fmt.Errorf("invalid ticker format (letters and digits, optional -QUOTE)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}
	return ticker, nil
}
