// Command simulation walks one ranking session end to end against a running
// server, answering every question at random, and prints the resulting top.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/pkg/serverutils"
	"boardgame-ranking-be/internal/service"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
)

var (
	coarseTiers = []string{"bad", "good", "excellent"}
	fineTiers   = []string{"cool", "super_cool", "excellent"}

	phaseColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
)

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func main() {
	baseURL := flag.String("base", "http://localhost:3000/api/ranking/v1", "API base URL")
	user := flag.String("user", "", "user id or catalog column name to rank as")
	topN := flag.Int("top", 10, "size of the top list")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for answers")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" || *user == "" {
		log.Fatal("JWT_SECRET and -user are required")
	}

	userId := service.UserIdFromLabel(*user)
	token, err := serverutils.SignToken(secret, userId, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	c := &client{baseURL: *baseURL, token: token, http: &http.Client{Timeout: 10 * time.Second}}
	rng := rand.New(rand.NewSource(*seed))

	fmt.Printf("=== Ranking Simulation (user %s, seed %d) ===\n", userId, *seed)

	var step dto.RankingStepResponse
	if err := c.post("/sessions", dto.StartRankingRequest{TopN: topN}, &step); err != nil {
		errColor.Printf("start failed: %v\n", err)
		os.Exit(1)
	}
	okColor.Printf("Session %s started with %d games\n", step.SessionId, step.Total)

	lastPhase := ""
	for step.NextItem != nil {
		if step.Phase != lastPhase {
			phaseColor.Printf("\n-- %s --\n", step.Phase)
			lastPhase = step.Phase
		}

		var path, tier string
		if step.Phase == dto.PhaseCoarseRound {
			path, tier = "/coarse", coarseTiers[rng.Intn(len(coarseTiers))]
		} else {
			path, tier = "/fine", fineTiers[rng.Intn(len(fineTiers))]
		}
		fmt.Printf("[%d/%d] %-40s -> %s\n", step.Answered+1, step.Total, step.NextItem.Name, tier)

		body := map[string]string{"item_id": step.NextItem.Id.String(), "tier": tier}
		if err := c.post("/sessions/"+step.SessionId.String()+path, body, &step); err != nil {
			errColor.Printf("answer failed: %v\n", err)
			os.Exit(1)
		}
	}

	switch step.Phase {
	case dto.PhaseDeadEnd:
		warnColor.Printf("\nDead end: %s\n", step.Message)
		return
	case dto.PhaseFinal:
		if len(step.Top) > 1 {
			// swap the first and last place once to exercise manual edits
			swaps := dto.ApplySwapsRequest{Swaps: [][2]int{{1, len(step.Top)}}}
			if err := c.post("/sessions/"+step.SessionId.String()+"/swaps", swaps, &step); err != nil {
				errColor.Printf("swap failed: %v\n", err)
				os.Exit(1)
			}
		}
		phaseColor.Println("\n-- final --")
		for _, item := range step.Top {
			okColor.Printf("%3d. ", item.Rank)
			fmt.Println(item.Name)
		}
	default:
		errColor.Printf("unexpected phase %q\n", step.Phase)
		os.Exit(1)
	}
}

func (c *client) post(path string, body interface{}, out *dto.RankingStepResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope[dto.RankingStepResponse]
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("status %d: %s", resp.StatusCode, raw)
	}
	if !env.Success {
		return fmt.Errorf("status %d: %s", resp.StatusCode, env.Message)
	}
	*out = env.Data
	return nil
}
