// Travel Agent is an LLM-driven travel workflow CLI: flight and hotel
// search, cost estimation, AI trip planning, and dry-run-safe booking.
// The model orchestrates a fixed tool catalog; every tool call is written
// to a JSONL audit trail and mirrored into SQLite.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/agent"
	"github.com/vjk-2k5/Travel-agent/internal/audit"
	"github.com/vjk-2k5/Travel-agent/internal/config"
	"github.com/vjk-2k5/Travel-agent/internal/core"
	"github.com/vjk-2k5/Travel-agent/internal/flightapi"
	"github.com/vjk-2k5/Travel-agent/internal/groq"
	"github.com/vjk-2k5/Travel-agent/internal/hf"
	"github.com/vjk-2k5/Travel-agent/internal/middleware"
	"github.com/vjk-2k5/Travel-agent/internal/searchapi"
	"github.com/vjk-2k5/Travel-agent/internal/store"
	"github.com/vjk-2k5/Travel-agent/internal/tools"
)

// ANSI escape sequences, blanked out when --no-color or stdout is not a TTY.
var (
	cCyan   = "\033[96m"
	cGreen  = "\033[92m"
	cYellow = "\033[93m"
	cRed    = "\033[91m"
	cBold   = "\033[1m"
	cDim    = "\033[2m"
	cReset  = "\033[0m"
)

func disableColors() {
	cCyan, cGreen, cYellow, cRed, cBold, cDim, cReset = "", "", "", "", "", "", ""
}

func main() {
	query := flag.String("query", "", "single query to process (non-interactive mode)")
	flag.StringVar(query, "q", "", "shorthand for -query")
	dryRun := flag.Bool("dry-run", false, "force dry-run mode (bookings are simulated)")
	model := flag.String("model", "", "Groq model id (default: from TRAVEL_AGENT_MODEL)")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	if *noColor || !(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) {
		disableColors()
	}

	if err := run(*query, *dryRun, *model); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(query string, dryRun bool, modelOverride string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if modelOverride != "" {
		cfg.Model = modelOverride
	}
	if dryRun {
		cfg.DryRunMode = true
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	fileSink, err := audit.NewFileSink(cfg.AuditLogPath, logger)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	sink := audit.MultiSink{fileSink, store.NewAuditStore(db, logger)}

	svc := tools.NewService(logger)
	svc.DB = db
	if cfg.FlightAPIKey != "" {
		svc.Flights = flightapi.NewClient(cfg.FlightAPIKey)
	}
	if cfg.SearchAPIKey != "" {
		svc.Hotels = searchapi.NewClient(cfg.SearchAPIKey)
	}
	if cfg.HFAPIToken != "" {
		svc.Planner = hf.NewClient(cfg.HFAPIToken)
	}

	executor, err := tools.NewExecutor(svc, sink, logger)
	if err != nil {
		return fmt.Errorf("build executor: %w", err)
	}
	guarded := middleware.NewDryRun(executor, sink, cfg.DryRunMode, logger)

	client := groq.NewClient(cfg.GroqAPIKey, cfg.Model, cfg.GroqBaseURL, cfg.Temperature)
	ag := agent.New(client, guarded, sink, logger)
	ag.SetMaxIterations(cfg.MaxIterations)

	if query != "" {
		return singleQuery(ctx, ag, query)
	}
	return interactive(ctx, ag, cfg.DryRunMode)
}

func singleQuery(ctx context.Context, ag *agent.Agent, query string) error {
	fmt.Println()
	fmt.Printf("  %sQuery:%s %s\n", cCyan, cReset, query)
	fmt.Printf("  %sProcessing...%s\n", cDim, cReset)

	resp := ag.ProcessRequest(ctx, query)
	printResponse(resp)
	if !resp.Success {
		os.Exit(1)
	}
	return nil
}

func interactive(ctx context.Context, ag *agent.Agent, dryRun bool) error {
	printBanner()
	printCapabilities()
	printCommands()
	if dryRun {
		fmt.Printf("  %sDRY-RUN MODE: bookings will be simulated only%s\n\n", cYellow, cReset)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("  %sYou:%s ", cGreen, cReset)
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Printf("\n  %sGoodbye! Safe travels!%s\n\n", cCyan, cReset)
			return nil
		case "reset":
			ag.Reset()
			fmt.Printf("\n  %sConversation reset. Starting fresh!%s\n\n", cYellow, cReset)
			continue
		case "help":
			printTips()
			continue
		}

		fmt.Printf("\n  %sProcessing your request...%s\n", cDim, cReset)
		resp := ag.ProcessRequest(ctx, input)
		printResponse(resp)
	}
	return scanner.Err()
}

func printBanner() {
	fmt.Println()
	fmt.Printf("%s╔══════════════════════════════════════════════════════════════╗%s\n", cCyan, cReset)
	fmt.Printf("%s║      TRAVEL AGENT — AI Workflow Orchestrator                 ║%s\n", cCyan+cBold, cReset)
	fmt.Printf("%s╚══════════════════════════════════════════════════════════════╝%s\n", cCyan, cReset)
	fmt.Println()
}

func printCapabilities() {
	fmt.Printf("  %sWhat I can do for you:%s\n\n", cBold, cReset)
	caps := [][2]string{
		{"Search flights", "between any airports worldwide"},
		{"Find hotels", "in cities and near landmarks"},
		{"Plan your trip", "AI-powered itinerary with places to visit"},
		{"Discover attractions", "top sights, food, activities by category"},
		{"Estimate costs", "with detailed breakdowns"},
		{"Book trips", "with safe dry-run preview"},
	}
	for _, c := range caps {
		fmt.Printf("    %s%s%s %s- %s%s\n", cGreen, c[0], cReset, cDim, c[1], cReset)
	}
	fmt.Println()
}

func printCommands() {
	fmt.Printf("%s%s%s\n", cDim, strings.Repeat("─", 64), cReset)
	fmt.Printf("  %sCommands:%s %squit%s/%sexit%s to end, %sreset%s for new conversation, %shelp%s for tips\n",
		cDim, cReset, cYellow, cReset, cYellow, cReset, cYellow, cReset, cYellow, cReset)
	fmt.Printf("%s%s%s\n\n", cDim, strings.Repeat("─", 64), cReset)
}

func printTips() {
	fmt.Println()
	fmt.Printf("  %sTips for better results:%s\n\n", cYellow+cBold, cReset)
	tips := []string{
		"Use airport codes: MAA (Chennai), SIN (Singapore), DXB (Dubai)",
		"Specify dates: 2026-09-15 (YYYY-MM-DD format)",
		"Include passenger count: '2 adults'",
		"Mention preferences: 'economy class', 'near Marina Bay'",
	}
	for _, tip := range tips {
		fmt.Printf("    %s•%s %s\n", cDim, cReset, tip)
	}
	fmt.Println()
	fmt.Printf("  %sExample queries:%s\n", cCyan+cBold, cReset)
	examples := []string{
		"Find flights from Chennai to Singapore for 2 adults on 2026-10-01",
		"Search hotels near Marina Bay, Singapore, Oct 1-5, 2026",
		"Plan a 5 day trip to Bali with focus on beaches and food",
		"What are the top attractions in Paris?",
	}
	for _, ex := range examples {
		fmt.Printf("    %s→%s %s\n", cDim, cReset, ex)
	}
	fmt.Println()
}

func printResponse(resp core.Response) {
	fmt.Println()
	if resp.Success {
		fmt.Printf("  %sResponse:%s\n", cGreen+cBold, cReset)
	} else {
		fmt.Printf("  %sError:%s\n", cRed+cBold, cReset)
	}
	fmt.Printf("  %s%s%s\n", cDim, strings.Repeat("─", 60), cReset)

	if resp.Message != "" {
		fmt.Println()
		for _, line := range strings.Split(resp.Message, "\n") {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
	}
	if resp.Error != "" {
		fmt.Printf("\n  %sError: %s%s\n", cRed, resp.Error, cReset)
	}

	if len(resp.ToolResults) > 0 {
		fmt.Printf("  %sFunction calls: %d%s\n", cYellow, len(resp.ToolResults), cReset)
		for i, tr := range resp.ToolResults {
			fmt.Printf("      %s%d.%s %s%s()%s\n", cDim, i+1, cReset, cCyan, tr.Function, cReset)
		}
	}

	for _, tr := range resp.ToolResults {
		printResultSummary(tr.Result)
	}

	if len(resp.Extra) > 0 {
		if raw, err := json.MarshalIndent(resp.Extra, "  ", "  "); err == nil {
			fmt.Printf("\n  %s\n", string(raw))
		}
	}

	fmt.Printf("\n  %s%s%s\n\n", cDim, strings.Repeat("─", 60), cReset)
}

// printResultSummary shows top flight and hotel options inline so the user
// does not have to read raw JSON for the common searches.
func printResultSummary(res core.ToolResult) {
	if !res.Success || res.Data == nil {
		return
	}
	if flights, ok := res.Data["flights"].([]map[string]any); ok {
		fmt.Printf("\n  %sFound %d flight options:%s\n", cGreen, len(flights), cReset)
		for i, f := range flights {
			if i == 3 {
				fmt.Printf("      %s... and %d more%s\n", cDim, len(flights)-3, cReset)
				break
			}
			airline := nestedString(f, "airline", "name")
			currency := nestedString(f, "price", "currency")
			fmt.Printf("      %d. %s - %s %v\n", i+1, airline, currency, nestedValue(f, "price", "total"))
		}
	}
	if hotels, ok := res.Data["hotels"].([]map[string]any); ok {
		fmt.Printf("\n  %sFound %d hotel options:%s\n", cGreen, len(hotels), cReset)
		for i, h := range hotels {
			if i == 3 {
				fmt.Printf("      %s... and %d more%s\n", cDim, len(hotels)-3, cReset)
				break
			}
			name, _ := h["name"].(string)
			currency := nestedString(h, "price", "currency")
			total := nestedValue(h, "price", "total_from")
			if total == nil {
				total = nestedValue(h, "price", "total")
			}
			fmt.Printf("      %d. %s - %s %v\n", i+1, name, currency, total)
		}
	}
	if itinerary, ok := res.Data["itinerary"].(string); ok && itinerary != "" {
		fmt.Printf("\n  %sTrip Itinerary (AI-generated):%s\n\n", cGreen+cBold, cReset)
		printClipped(itinerary, 30)
	}
	if attractions, ok := res.Data["attractions"].(string); ok && attractions != "" {
		fmt.Printf("\n  %sTop Attractions:%s\n\n", cGreen+cBold, cReset)
		printClipped(attractions, 20)
	}
}

func printClipped(text string, maxLines int) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == maxLines {
			fmt.Printf("  %s... (truncated)%s\n", cDim, cReset)
			return
		}
		fmt.Printf("  %s\n", line)
	}
}

func nestedString(m map[string]any, keys ...string) string {
	v := nestedValue(m, keys...)
	s, _ := v.(string)
	return s
}

func nestedValue(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = node[k]
	}
	return cur
}
