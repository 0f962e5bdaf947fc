// Command lambda serves wellness evaluation behind API Gateway.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/logger"
	"github.com/huangsam/wellscore/schema"
)

// ErrorResponse is the body of every failed invocation.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type evaluator struct {
	engine *core.Engine
	log    zerolog.Logger
}

func (e *evaluator) handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodPost {
		return createErrorResponse(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is supported", ""), nil
	}

	var in schema.EvaluationInput
	if err := json.Unmarshal([]byte(request.Body), &in); err != nil {
		return createErrorResponse(http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON in request body", err.Error()), nil
	}
	if err := ctx.Err(); err != nil {
		return createErrorResponse(http.StatusGatewayTimeout, "CANCELLED", "Request cancelled", err.Error()), nil
	}

	result, err := e.engine.Evaluate(in)
	if errors.Is(err, core.ErrInvalidInput) {
		return createErrorResponse(http.StatusBadRequest, "VALIDATION_ERROR", "Input failed validation", err.Error()), nil
	}
	if err != nil {
		e.log.Error().Err(err).Str("request_id", request.RequestContext.RequestID).Msg("Evaluation failed")
		return createErrorResponse(http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to evaluate input", err.Error()), nil
	}

	body, err := json.Marshal(struct {
		*schema.ScoreResult
		Wellness *float64 `json:"wellness,omitempty"`
	}{result, result.Wellness()})
	if err != nil {
		return createErrorResponse(http.StatusInternalServerError, "SERIALIZATION_ERROR", "Failed to serialize response", err.Error()), nil
	}

	e.log.Info().
		Str("employee_id", result.EmployeeID).
		Str("zone", string(result.Zone)).
		Msg("Evaluated")

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func createErrorResponse(statusCode int, code, message, details string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(ErrorResponse{Error: message, Code: code, Details: details})
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func main() {
	log := logger.New(logger.Config{Level: os.Getenv("WELLSCORE_LOG_LEVEL")})
	e := &evaluator{engine: core.DefaultEngine, log: log.With().Str("component", "lambda").Logger()}
	lambda.Start(e.handle)
}
