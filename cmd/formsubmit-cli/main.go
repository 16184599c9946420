package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsubmit/pkg/submission"
	"github.com/goliatone/go-formsubmit/pkg/validation"
)

// fileConfig is the optional YAML configuration for the CLI.
type fileConfig struct {
	Endpoint         string            `yaml:"endpoint"`
	Method           string            `yaml:"method"`
	Headers          map[string]string `yaml:"headers"`
	TimeoutMs        int               `yaml:"timeout_ms"`
	MaxRetries       int               `yaml:"max_retries"`
	RetryBaseDelayMs int               `yaml:"retry_base_delay_ms"`
}

func main() {
	configPath := flag.String("config", "", "YAML config file (endpoint, method, headers, retries)")
	endpoint := flag.String("endpoint", "", "collaborator endpoint URL (overrides config)")
	verbose := flag.Bool("verbose", false, "log attempt-level detail")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if cfg.Endpoint == "" {
		log.Fatal("an endpoint is required: pass -endpoint or set it in the config file")
	}

	options := []submission.Option{
		submission.WithValidator(validation.Contact()),
		submission.WithHeaders(cfg.Headers),
	}
	if cfg.Method != "" {
		options = append(options, submission.WithMethod(cfg.Method))
	}
	if cfg.TimeoutMs > 0 {
		options = append(options, submission.WithTimeout(time.Duration(cfg.TimeoutMs)*time.Millisecond))
	}
	if cfg.MaxRetries > 0 {
		options = append(options, submission.WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.RetryBaseDelayMs > 0 {
		options = append(options, submission.WithRetryBaseDelay(time.Duration(cfg.RetryBaseDelayMs)*time.Millisecond))
	}
	if *verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		options = append(options, submission.WithLogger(logger))
	}

	client, err := submission.New(cfg.Endpoint, options...)
	if err != nil {
		log.Fatalf("configure client: %v", err)
	}

	data, err := promptSubmission()
	if err != nil {
		log.Fatalf("collect submission: %v", err)
	}

	result, err := client.Submit(context.Background(), data)
	if err != nil {
		printFailure(err)
		os.Exit(1)
	}

	fmt.Printf("Submitted (status %d)\n", result.StatusCode)
	if result.Data != nil {
		payload, err := json.MarshalIndent(result.Data, "", "  ")
		if err == nil {
			fmt.Println(string(payload))
		}
	}
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func promptSubmission() (map[string]any, error) {
	answers := struct {
		Name    string
		Email   string
		Phone   string
		Subject string
		Message string
	}{}

	questions := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Name:"},
			Validate: survey.Required,
		},
		{
			Name:     "email",
			Prompt:   &survey.Input{Message: "Email:"},
			Validate: survey.Required,
		},
		{
			Name:   "phone",
			Prompt: &survey.Input{Message: "Phone (optional):"},
		},
		{
			Name:   "subject",
			Prompt: &survey.Input{Message: "Subject (optional):"},
		},
		{
			Name:     "message",
			Prompt:   &survey.Multiline{Message: "Message:"},
			Validate: survey.Required,
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		return nil, err
	}

	data := map[string]any{
		"name":    strings.TrimSpace(answers.Name),
		"email":   strings.TrimSpace(answers.Email),
		"message": answers.Message,
	}
	if phone := strings.TrimSpace(answers.Phone); phone != "" {
		data["phone"] = phone
	}
	if subject := strings.TrimSpace(answers.Subject); subject != "" {
		data["subject"] = subject
	}
	return data, nil
}

func printFailure(err error) {
	subErr, ok := err.(*submission.Error)
	if !ok {
		fmt.Fprintf(os.Stderr, "submission failed: %v\n", err)
		return
	}

	fmt.Fprintf(os.Stderr, "submission failed: %s\n", subErr.Message)
	if subErr.Status != 0 {
		fmt.Fprintf(os.Stderr, "  status: %d\n", subErr.Status)
	}
	if subErr.Code != "" {
		fmt.Fprintf(os.Stderr, "  code: %s\n", subErr.Code)
	}
	for field, messages := range subErr.FieldErrors {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, strings.Join(messages, "; "))
	}
}
