package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForMessage prompts the user for their next chat message
func PromptForMessage() (string, error) {
	var message string
	prompt := &survey.Input{
		Message: "You:",
		Help:    "Ask about a crypto price or market stats, or type /quit to exit",
	}

	err := survey.AskOne(prompt, &message, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if len(str) == 0 {
			return fmt.Errorf("message cannot be empty")
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(message), nil
}

// PromptForRestartOrExit prompts the user after the conversation ends
func PromptForRestartOrExit() (bool, error) {
	var choice string
	prompt := &survey.Select{
		Message: "What would you like to do next?",
		Options: []string{
			"Start a new conversation",
			"Exit cryptochat",
		},
		Default: "Exit cryptochat",
	}

	err := survey.AskOne(prompt, &choice)
	if err != nil {
		return false, err
	}

	return choice == "Start a new conversation", nil
}
