package api

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/compare"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/rgehrsitz/wealthpath/internal/sequencing"
	"github.com/valyala/fasthttp"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
	Field     string `json:"field,omitempty"`
}

// CompareRequest is the body of POST /v1/compare.
type CompareRequest struct {
	Name          string          `json:"name"`
	Inputs        json.RawMessage `json:"inputs"`
	Templates     []string        `json:"templates"`
	Transforms    []string        `json:"transforms"`
	Seed          int64           `json:"seed"`
	Deterministic bool            `json:"deterministic"`
}

// SocialSecurityResponse is the body of POST /v1/social-security.
type SocialSecurityResponse struct {
	ClaimingAge          int                              `json:"claimingAge"`
	MonthlyBenefit       string                           `json:"monthlyBenefit"`
	SpouseMonthlyBenefit string                           `json:"spouseMonthlyBenefit"`
	Options              []domain.SocialSecurityDataPoint `json:"options"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlan(ctx *fasthttp.RequestCtx) {
	in, ok := s.decodeInputs(ctx, ctx.PostBody())
	if !ok {
		return
	}
	opts, err := runOptions(ctx.QueryArgs())
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	plan, err := s.engine.CalculateRetirementPlan(*in, opts)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, plan)
}

func (s *Server) handleSocialSecurity(ctx *fasthttp.RequestCtx) {
	in, ok := s.decodeInputs(ctx, ctx.PostBody())
	if !ok {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, SocialSecurityResponse{
		ClaimingAge:          calculation.ClampClaimingAge(in.SocialSecurityClaimingAge),
		MonthlyBenefit:       calculation.PrimaryMonthlyBenefit(*in).StringFixed(2),
		SpouseMonthlyBenefit: calculation.SpouseMonthlyBenefit(*in).StringFixed(2),
		Options:              calculation.GenerateSocialSecurityData(*in),
	})
}

func (s *Server) handleDebtPayoff(ctx *fasthttp.RequestCtx) {
	in, ok := s.decodeInputs(ctx, ctx.PostBody())
	if !ok {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, calculation.GenerateDebtPayoffData(*in))
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Inputs) == 0 {
		s.writeError(ctx, fasthttp.StatusBadRequest, "inputs are required")
		return
	}
	in, ok := s.decodeInputs(ctx, req.Inputs)
	if !ok {
		return
	}
	opts, err := runOptions(ctx.QueryArgs())
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	set, err := s.compareEngine(opts).Compare(ctx, in, compare.CompareOptions{
		BaseScenarioName: req.Name,
		Templates:        req.Templates,
		Transforms:       req.Transforms,
		Seed:             req.Seed,
		Deterministic:    req.Deterministic,
	})
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, set)
}

// compareEngine returns the shared compare engine, or one over an engine copy
// when opts override the debt model or the withdrawal strategy.
func (s *Server) compareEngine(opts calculation.Options) *compare.CompareEngine {
	runner := s.engine.WithOptions(opts)
	if runner == s.engine {
		return s.compare
	}
	return compare.NewCompareEngine(runner)
}

// decodeInputs parses a household document with the config defaults. It
// writes the error response itself and reports whether to continue.
func (s *Server) decodeInputs(ctx *fasthttp.RequestCtx, body []byte) (*domain.CalculatorInputs, bool) {
	if len(body) == 0 {
		s.writeError(ctx, fasthttp.StatusBadRequest, "request body is required")
		return nil, false
	}
	in, err := s.parser.Parse(body)
	if err != nil {
		s.writeEngineError(ctx, err)
		return nil, false
	}
	return in, true
}

func runOptions(args *fasthttp.Args) (calculation.Options, error) {
	opts := calculation.Options{Deterministic: args.GetBool("deterministic")}
	if raw := args.Peek("seed"); len(raw) > 0 {
		seed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid seed %q", raw)
		}
		opts.Seed = seed
	}
	switch model := string(args.Peek("debt_model")); model {
	case "":
	case string(calculation.DebtModelSchedule), string(calculation.DebtModelDecay):
		opts.DebtModel = calculation.DebtModel(model)
	default:
		return opts, fmt.Errorf("unknown debt_model %q", model)
	}
	if name := string(args.Peek("withdrawal_strategy")); name != "" {
		if !slices.Contains(sequencing.StrategyNames, name) {
			return opts, fmt.Errorf("unknown withdrawal_strategy %q", name)
		}
		var order []string
		if raw := string(args.Peek("withdrawal_order")); raw != "" {
			order = strings.Split(raw, ",")
		}
		opts.Strategy = sequencing.CreateStrategy(name, order)
	}
	return opts, nil
}

// writeEngineError maps validation failures to 422 and everything else the
// caller sent to 400.
func (s *Server) writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		s.writeErrorBody(ctx, ErrorResponse{
			Status:  fasthttp.StatusUnprocessableEntity,
			Message: err.Error(),
			Field:   ve.Field,
		})
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeErrorBody(ctx, ErrorResponse{Status: status, Message: message})
}

func (s *Server) writeErrorBody(ctx *fasthttp.RequestCtx, body ErrorResponse) {
	body.RequestID = requestID(ctx)
	s.logger.WithField("request_id", body.RequestID).Warnf("request failed: %s", body.Message)
	s.writeJSON(ctx, body.Status, body)
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode response")
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
