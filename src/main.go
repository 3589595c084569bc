package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"google.golang.org/api/iterator"

	"crosswarped.com/cluegen"
	"crosswarped.com/cluegen/internal/render"
	"crosswarped.com/cluegen/pkg/corpus"
)

type RecordPayload struct {
	Clue    string `json:"clue"`
	Answer  string `json:"answer"`
	Quality int    `json:"quality"`
}

type GenerateBatchRequest struct {
	Width         int             `json:"width"`
	Height        int             `json:"height"`
	Count         int             `json:"count"`
	MaxIterations int             `json:"maxIterations"`
	Table         string          `json:"table"`
	Records       []RecordPayload `json:"records"`
	Seed          uint64          `json:"seed"`
}

type WordPayload struct {
	Text    string `json:"text"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Dir     string `json:"dir"`
	Clue    string `json:"clue"`
	Quality int    `json:"quality"`
}

type PuzzlePayload struct {
	Rows         []string      `json:"rows"`
	Words        []WordPayload `json:"words"`
	EmptyCells   int           `json:"emptyCells"`
	QualityScore float64       `json:"qualityScore"`
	Tier         string        `json:"tier"`
}

type GenerateBatchResponse struct {
	Success bool            `json:"success"`
	Puzzles []PuzzlePayload `json:"puzzles"`
	Error   string          `json:"error,omitempty"`
}

func getRecords(ctx context.Context, table string) ([]corpus.Answer, error) {
	client, err := bigquery.NewClient(ctx, "xword-x")
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT clue, answer, quality FROM `%s` ORDER BY quality", table)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var records []corpus.Answer
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		clue, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		answer, ok := row[1].(string)
		if !ok {
			return nil, fmt.Errorf("row[1] is not a string: %v", row[1])
		}
		quality, ok := row[2].(int64)
		if !ok {
			return nil, fmt.Errorf("row[2] is not an integer: %v", row[2])
		}
		records = append(records, corpus.Answer{Clue: clue, Answer: answer, Quality: int(quality)})
	}
	return records, nil
}

func execute(ctx context.Context, req GenerateBatchRequest) ([]PuzzlePayload, error) {
	if req.Width < 3 || req.Height < 3 {
		return nil, fmt.Errorf("width and height must be at least 3")
	}
	if req.Count <= 0 {
		return nil, fmt.Errorf("count must be at least 1")
	}
	if req.Count > 10 {
		return nil, fmt.Errorf("count must be at most 10")
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = 2000 * req.Count
	}

	records := make([]corpus.Answer, 0, len(req.Records))
	for _, rec := range req.Records {
		records = append(records, corpus.Answer{Clue: rec.Clue, Answer: rec.Answer, Quality: rec.Quality})
	}

	if req.Table != "" {
		tableRecords, err := getRecords(ctx, req.Table)
		if err != nil {
			return nil, fmt.Errorf("getRecords: %w", err)
		}
		fmt.Printf("Loaded %d records from %s\n", len(tableRecords), req.Table)
		records = append(records, tableRecords...)
	}

	ix, err := corpus.NewIndex(records, max(req.Width, req.Height))
	if err != nil {
		return nil, fmt.Errorf("corpus.NewIndex: %w", err)
	}

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32|1))
	gen := cluegen.NewGenerator(req.Width, req.Height, ix, rng)

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		fmt.Printf("Setting timeout to %v\n", timeout)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, stats := gen.GenerateBatch(ctx, req.Count, req.MaxIterations)
	fmt.Printf("Attempts: %d, perfect: %d, imperfect: %d, fallback: %d\n",
		stats.Attempts, stats.Perfect, stats.Imperfect, stats.Fallback)

	puzzles := make([]PuzzlePayload, 0, len(results))
	for _, r := range results {
		words := r.Grid.Reconcile(ix)
		payload := PuzzlePayload{
			Rows:         render.Rows(r.Grid),
			Words:        make([]WordPayload, 0, len(words)),
			EmptyCells:   r.EmptyCells,
			QualityScore: r.Score,
			Tier:         r.Tier.String(),
		}
		for _, w := range words {
			payload.Words = append(payload.Words, WordPayload{
				Text:    w.Text,
				Row:     w.Row,
				Col:     w.Col,
				Dir:     w.Dir.String(),
				Clue:    w.Clue,
				Quality: w.Quality,
			})
		}
		puzzles = append(puzzles, payload)
	}

	return puzzles, ctx.Err()
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func generateBatch(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req GenerateBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fmt.Printf("Error parsing JSON body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		response := GenerateBatchResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	puzzles, err := execute(r.Context(), req)

	response := GenerateBatchResponse{
		Success: err == nil,
		Puzzles: puzzles,
	}

	if err != nil {
		response.Error = err.Error()
	} else if len(puzzles) == 0 {
		response.Error = "No puzzles could be generated with the given parameters"
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Printf("Error marshaling response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/generate-batch", generateBatch)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
