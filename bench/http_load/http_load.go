package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"example.com/feedcore/internal/feedsync"
	"example.com/feedcore/internal/remote"
)

// UserResp represents the response returned by the server after user creation
type UserResp struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// PostReq represents the JSON payload for creating a post
type PostReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// counters are shared by all load goroutines.
type counters struct {
	requests, successes, errors4xx, errors5xx, transport atomic.Int64
}

func (c *counters) record(status int, err error) {
	c.requests.Add(1)
	switch {
	case err != nil:
		c.transport.Add(1)
	case status >= 200 && status < 300:
		c.successes.Add(1)
	case status >= 400 && status < 500:
		c.errors4xx.Add(1)
	case status >= 500:
		c.errors5xx.Add(1)
	}
}

func main() {
	var server string
	var duration int
	var concurrency int
	var writeEvery int
	var csvFile string
	var trimPercent float64
	var insecure bool

	flag.StringVar(&server, "server", "http://localhost:8080", "server base URL")
	flag.IntVar(&duration, "duration", 30, "duration in seconds")
	flag.IntVar(&concurrency, "c", 50, "number of concurrent feed clients")
	flag.IntVar(&writeEvery, "write-every", 5, "every Nth iteration creates a post instead of refreshing")
	flag.StringVar(&csvFile, "csv", "latencies.csv", "CSV file to save latencies")
	flag.Float64Var(&trimPercent, "trim", 1.0, "percent of latency to trim from top and bottom for trimmed mean")
	flag.BoolVar(&insecure, "insecure", false, "skip TLS verification for self-signed certs")
	flag.Parse()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure},
		},
		Timeout: 10 * time.Second,
	}

	fmt.Printf("Creating %d users...\n", concurrency)
	users := make([]UserResp, concurrency)
	for i := range users {
		u, err := createUser(client, server, fmt.Sprintf("load-user-%d-%d", i, time.Now().UnixNano()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
			os.Exit(1)
		}
		users[i] = u
	}
	fmt.Println("Users created.")

	stopTime := time.Now().Add(time.Duration(duration) * time.Second)
	var wg sync.WaitGroup
	var stats counters
	latencySlices := make([][]float64, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			user := users[idx]
			svc := feedsync.New(remote.NewHTTPFetcher(server,
				remote.WithToken(user.Token),
				remote.WithHTTPClient(client),
			))

			var local []float64
			for iter := 1; time.Now().Before(stopTime); iter++ {
				start := time.Now()
				var status int
				var err error
				if writeEvery > 0 && iter%writeEvery == 0 {
					status, err = createPost(client, server, user.Token)
				} else {
					status, err = refreshStatus(svc.Refresh(context.Background()))
				}
				local = append(local, time.Since(start).Seconds()*1000)
				stats.record(status, err)
			}
			latencySlices[idx] = local
		}(i)
	}

	wg.Wait()

	var all []float64
	for _, s := range latencySlices {
		all = append(all, s...)
	}
	sort.Float64s(all)

	fmt.Printf("Requests: %d  Successes: %d  4xx: %d  5xx: %d  transport: %d\n",
		stats.requests.Load(), stats.successes.Load(), stats.errors4xx.Load(),
		stats.errors5xx.Load(), stats.transport.Load())
	fmt.Printf("Latency (ms): trimmed_mean=%.2f p50=%.2f p90=%.2f p99=%.2f\n",
		trimmedMean(all, trimPercent), percentile(all, 50), percentile(all, 90), percentile(all, 99))

	if err := writeCSV(csvFile, all); err != nil {
		fmt.Printf("Failed to write CSV file: %v\n", err)
		return
	}
	fmt.Printf("Saved latencies to %s\n", csvFile)
}

func createUser(client *http.Client, server, name string) (UserResp, error) {
	b, _ := json.Marshal(map[string]string{"username": name})
	resp, err := client.Post(server+"/users", "application/json", bytes.NewReader(b))
	if err != nil {
		return UserResp{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return UserResp{}, fmt.Errorf("create user: unexpected status %d", resp.StatusCode)
	}

	var u UserResp
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return UserResp{}, fmt.Errorf("decode user response: %w", err)
	}
	return u, nil
}

func createPost(client *http.Client, server, token string) (int, error) {
	b, _ := json.Marshal(PostReq{
		Title:   "Load test",
		Content: fmt.Sprintf("load test post %d", time.Now().UnixNano()),
	})
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, server+"/posts", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// refreshStatus maps a Refresh result onto an HTTP-like status for the counters.
func refreshStatus(err error) (int, error) {
	if err == nil {
		return http.StatusOK, nil
	}
	var netErr *remote.NetworkError
	if errors.As(err, &netErr) && netErr.StatusCode != 0 {
		return netErr.StatusCode, nil
	}
	return 0, err
}

func writeCSV(path string, latencies []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"latency_ms"})
	for _, d := range latencies {
		w.Write([]string{fmt.Sprintf("%.3f", d)})
	}
	w.Flush()
	return w.Error()
}
