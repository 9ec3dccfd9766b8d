package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/core"
	"github.com/vjk-2k5/Travel-agent/internal/schemas"
)

type toolFunc func(ctx context.Context, args map[string]any) (map[string]any, error)

type binding struct {
	schema *jsonschema.Schema
	run    toolFunc
	// attachAuditID marks tools whose results carry their own audit log
	// id, so bookings can be traced back from their payloads.
	attachAuditID bool
}

// Executor dispatches tool calls against the catalog. It never returns an
// error: unknown names, invalid arguments, execution failures and panics
// all come back as failed ToolResults, and every execution is audited.
type Executor struct {
	svc      *Service
	sink     core.AuditSink
	logger   *zap.Logger
	bindings map[string]binding
}

// NewExecutor builds the dispatch table and compiles each tool's argument
// schema once.
func NewExecutor(svc *Service, sink core.AuditSink, logger *zap.Logger) (*Executor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		svc:      svc,
		sink:     sink,
		logger:   logger,
		bindings: make(map[string]binding),
	}

	runners := map[string]toolFunc{
		"search_flights":           e.runSearchFlights,
		"get_flight_pricing":       e.runGetFlightPricing,
		"search_hotels":            e.runSearchHotels,
		"check_hotel_availability": e.runCheckHotelAvailability,
		"estimate_total_cost":      e.runEstimateTotalCost,
		"book_flight":              e.runBookFlight,
		"book_hotel":               e.runBookHotel,
		"plan_destination":         e.runPlanDestination,
		"get_attractions":          e.runGetAttractions,
	}

	for _, def := range schemas.Catalog() {
		name := def.Function.Name
		run, ok := runners[name]
		if !ok {
			return nil, fmt.Errorf("tool %s has no implementation", name)
		}
		sch, err := compileSchema(def.Function.Parameters)
		if err != nil {
			return nil, fmt.Errorf("compiling schema for %s: %w", name, err)
		}
		e.bindings[name] = binding{
			schema:        sch,
			run:           run,
			attachAuditID: name == "book_flight" || name == "book_hotel",
		}
	}
	return e, nil
}

func compileSchema(params map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytesReader(raw))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("schema.json")
}

// Execute runs one tool call end to end: schema validation, dispatch,
// panic isolation, and audit logging.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) (result core.ToolResult) {
	if args == nil {
		args = map[string]any{}
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool panicked", zap.String("tool", name), zap.Any("panic", r))
			result = core.Fail(fmt.Sprintf("Function execution failed: %v", r))
			e.audit(name, args, result)
		}
	}()

	b, ok := e.bindings[name]
	if !ok {
		result = core.Fail("Unknown function: " + name)
		e.audit(name, args, result)
		return result
	}

	if err := b.schema.Validate(normalize(args)); err != nil {
		result = core.Fail(fmt.Sprintf("Invalid arguments for %s: %v", name, err))
		e.audit(name, args, result)
		return result
	}

	data, err := b.run(ctx, args)
	if err != nil {
		result = core.Fail(fmt.Sprintf("Function execution failed: %v", err))
	} else {
		result = core.Ok(data)
	}
	auditID := e.audit(name, args, result)
	if result.Success && b.attachAuditID && auditID != "" {
		result.Data["audit_log_id"] = auditID
	}
	return result
}

func (e *Executor) audit(name string, args map[string]any, result core.ToolResult) string {
	if e.sink == nil {
		return ""
	}
	var data any
	if result.Success {
		data = result.Data
	}
	return e.sink.Log(name, args, data, result.Success, result.Error)
}

// normalize rewrites args through JSON so validation sees the same value
// shapes the decoder produces.
func normalize(args map[string]any) any {
	raw, err := json.Marshal(args)
	if err != nil {
		return args
	}
	doc, err := jsonschema.UnmarshalJSON(bytesReader(raw))
	if err != nil {
		return args
	}
	return doc
}

func (e *Executor) runSearchFlights(ctx context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.SearchFlights(ctx, FlightSearchParams{
		Origin:        argString(args, "origin"),
		Destination:   argString(args, "destination"),
		DepartureDate: argString(args, "departure_date"),
		ReturnDate:    argString(args, "return_date"),
		Adults:        argInt(args, "adults"),
		CabinClass:    argString(args, "cabin_class"),
	})
}

func (e *Executor) runGetFlightPricing(_ context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.GetFlightPricing(argString(args, "flight_offer_id"), argString(args, "currency"))
}

func (e *Executor) runSearchHotels(ctx context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.SearchHotels(ctx, HotelSearchParams{
		CityCode:  argString(args, "city_code"),
		Location:  argString(args, "location"),
		CheckIn:   argString(args, "check_in"),
		CheckOut:  argString(args, "check_out"),
		Adults:    argInt(args, "adults"),
		Rooms:     argInt(args, "rooms"),
		Amenities: argStringSlice(args, "amenities"),
	})
}

func (e *Executor) runCheckHotelAvailability(_ context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.CheckHotelAvailability(
		argString(args, "hotel_id"),
		argString(args, "check_in"),
		argString(args, "check_out"),
		argInt(args, "rooms"),
	)
}

func (e *Executor) runEstimateTotalCost(_ context.Context, args map[string]any) (map[string]any, error) {
	includeTaxes := true
	if v, ok := args["include_taxes"].(bool); ok {
		includeTaxes = v
	}
	return e.svc.EstimateTotalCost(
		argFloat(args, "flight_price"),
		argFloat(args, "hotel_price"),
		argString(args, "currency"),
		includeTaxes,
		argFloatMap(args, "additional_costs"),
	)
}

func (e *Executor) runBookFlight(_ context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.BookFlight(
		argString(args, "flight_offer_id"),
		argMapSlice(args, "passengers"),
		argBool(args, "dry_run"),
	)
}

func (e *Executor) runBookHotel(_ context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.BookHotel(
		argString(args, "hotel_offer_id"),
		argMapSlice(args, "guests"),
		argMap(args, "payment_info"),
		argBool(args, "dry_run"),
	)
}

func (e *Executor) runPlanDestination(ctx context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.PlanDestination(ctx, PlanParams{
		Destination: argString(args, "destination"),
		Days:        argInt(args, "days"),
		Interests:   argStringSlice(args, "interests"),
		TravelStyle: argString(args, "travel_style"),
		Budget:      argString(args, "budget"),
	})
}

func (e *Executor) runGetAttractions(ctx context.Context, args map[string]any) (map[string]any, error) {
	return e.svc.GetAttractions(ctx,
		argString(args, "destination"),
		argString(args, "category"),
		argInt(args, "limit"),
	)
}
