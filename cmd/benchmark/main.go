package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"
)

type result struct {
	status   int
	bytes    int64
	duration time.Duration
	err      error
}

func main() {
	concurrency := flag.Int("c", 100, "Number of concurrent connections")
	requests := flag.Int("n", 10000, "Number of requests to make")
	url := flag.String("url", "http://localhost:8080/index.html", "URL to benchmark")
	flag.Parse()

	if *concurrency <= 0 || *requests <= 0 {
		fmt.Println("-c and -n must be positive")
		return
	}

	fmt.Printf("Benchmarking %s with %d requests using %d concurrent connections\n",
		*url, *requests, *concurrency)

	// every response closes its connection, so there is nothing to reuse
	client := &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}

	jobs := make(chan int)
	results := make(chan result, *concurrency)

	var wg sync.WaitGroup
	for n := 0; n < *concurrency; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				results <- fetch(client, *url)
			}
		}()
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	startTime := time.Now()
	statusCounts := make(map[int]int)
	errorCount := 0
	var totalBytes int64
	responseTimes := make([]time.Duration, 0, *requests)

	completed := 0
	for r := range results {
		completed++
		responseTimes = append(responseTimes, r.duration)
		if r.err != nil {
			errorCount++
			if errorCount <= 10 { // limit error output
				fmt.Printf("Request error: %v\n", r.err)
			}
		} else {
			statusCounts[r.status]++
			totalBytes += r.bytes
		}

		// periodically report progress
		if completed%1000 == 0 {
			fmt.Printf("Completed %d requests (errors: %d)\n", completed, errorCount)
		}
	}
	duration := time.Since(startTime)

	slices.Sort(responseTimes)
	var totalTime time.Duration
	for _, t := range responseTimes {
		totalTime += t
	}

	fmt.Printf("\nBenchmark Results:\n")
	fmt.Printf("Total requests: %d\n", *requests)
	fmt.Printf("Failed requests: %d\n", errorCount)
	codes := make([]int, 0, len(statusCounts))
	for code := range statusCounts {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		fmt.Printf("  %d %s: %d\n", code, http.StatusText(code), statusCounts[code])
	}
	fmt.Printf("Body bytes received: %d\n", totalBytes)
	fmt.Printf("Total time: %v\n", duration)
	fmt.Printf("Requests per second: %.2f\n", float64(*requests)/duration.Seconds())
	fmt.Printf("Min response time: %v\n", responseTimes[0])
	fmt.Printf("Avg response time: %v\n", totalTime/time.Duration(len(responseTimes)))
	fmt.Printf("P99 response time: %v\n", responseTimes[len(responseTimes)*99/100])
	fmt.Printf("Max response time: %v\n", responseTimes[len(responseTimes)-1])
}

// one GET, reading the body until the server closes the connection
func fetch(client *http.Client, url string) result {
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return result{duration: time.Since(start), err: err}
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, resp.Body)
	return result{status: resp.StatusCode, bytes: n, duration: time.Since(start), err: err}
}
