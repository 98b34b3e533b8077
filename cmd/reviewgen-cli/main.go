package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/joho/godotenv"

	"github.com/reviewforge/reviewgen/internal/config"
	"github.com/reviewforge/reviewgen/pkg/flow"
	"github.com/reviewforge/reviewgen/pkg/generate"
	"github.com/reviewforge/reviewgen/pkg/render"
	"github.com/reviewforge/reviewgen/pkg/renderers/tui"
	"github.com/reviewforge/reviewgen/pkg/schema"
	"github.com/reviewforge/reviewgen/pkg/store"
)

// wizard drives one or more review sessions from the terminal. With -server
// it talks to a running instance; without it, generation and storage happen
// in-process.
type wizard struct {
	controller *flow.Controller
	renderer   *tui.Renderer
	serverURL  string
	httpClient *http.Client
	generator  *generate.Generator
	reviews    store.Store
}

func main() {
	var (
		serverFlag = flag.String("server", "", "base URL of a running server (empty: run in-process)")
		configFlag = flag.String("config", "", "path to a YAML config file")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	w := &wizard{
		controller: flow.NewController(),
		renderer:   tui.New(),
		serverURL:  strings.TrimRight(*serverFlag, "/"),
		httpClient: http.DefaultClient,
	}
	if w.serverURL == "" {
		client := generate.NewOpenAIClient(generate.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
		})
		w.generator = generate.New(client, generate.WithModel(cfg.OpenAI.Model))
		w.reviews = store.NewMemory()
	}

	if err := w.run(context.Background()); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, terminal.InterruptErr) {
			fmt.Println("\nAborted.")
			os.Exit(1)
		}
		log.Fatalf("wizard: %v", err)
	}
}

func (w *wizard) run(ctx context.Context) error {
	for {
		productType, err := w.promptProductType()
		if err != nil {
			return err
		}

		structure, err := w.generateStructure(ctx, productType)
		if err != nil {
			fmt.Printf("Could not generate a form: %v\n", err)
			continue
		}
		if err := w.controller.BeginReview(productType, structure); err != nil {
			return err
		}

		payload, err := w.renderer.Render(ctx, structure, render.Options{ProductType: productType})
		if err != nil {
			return err
		}
		var reviewData map[string]any
		if err := json.Unmarshal(payload, &reviewData); err != nil {
			return fmt.Errorf("decode collected answers: %w", err)
		}

		review, err := w.submitReview(store.ReviewInput{
			ProductType: productType,
			ReviewData:  reviewData,
		})
		if err != nil {
			fmt.Printf("Could not submit the review: %v\n", err)
			if err := w.controller.ChangeProduct(); err != nil {
				return err
			}
			continue
		}
		if err := w.controller.Complete(review); err != nil {
			return err
		}

		fmt.Printf("Saved review #%d for %s (%s)\n", review.ID, review.ProductType, review.CreatedAt)

		again := false
		if err := survey.AskOne(&survey.Confirm{
			Message: "Review another product?",
			Default: false,
		}, &again); err != nil {
			return translateErr(err)
		}
		if err := w.controller.Reset(); err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (w *wizard) promptProductType() (string, error) {
	var productType string
	err := survey.AskOne(&survey.Input{
		Message: "What product would you like to review?",
	}, &productType, survey.WithValidator(survey.Required))
	if err != nil {
		return "", translateErr(err)
	}
	return strings.TrimSpace(productType), nil
}

func (w *wizard) generateStructure(ctx context.Context, productType string) (schema.FormStructure, error) {
	if w.serverURL == "" {
		return w.generator.Generate(ctx, productType)
	}

	body, err := json.Marshal(map[string]string{"productType": productType})
	if err != nil {
		return schema.FormStructure{}, err
	}
	resp, err := w.postJSON(ctx, w.serverURL+"/api/form-structure", body)
	if err != nil {
		return schema.FormStructure{}, err
	}
	var structure schema.FormStructure
	if err := json.Unmarshal(resp, &structure); err != nil {
		return schema.FormStructure{}, fmt.Errorf("decode form structure: %w", err)
	}
	return structure, nil
}

func (w *wizard) submitReview(input store.ReviewInput) (store.Review, error) {
	if w.serverURL == "" {
		return w.reviews.CreateReview(input)
	}

	body, err := json.Marshal(input)
	if err != nil {
		return store.Review{}, err
	}
	resp, err := w.postJSON(context.Background(), w.serverURL+"/api/reviews", body)
	if err != nil {
		return store.Review{}, err
	}
	var review store.Review
	if err := json.Unmarshal(resp, &review); err != nil {
		return store.Review{}, fmt.Errorf("decode review: %w", err)
	}
	return review, nil
}

func (w *wizard) postJSON(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%s (status %d)", apiErr.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return raw, nil
}

func translateErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return tui.ErrAborted
	}
	return err
}
