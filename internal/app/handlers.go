package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kegliz/qasmplay/qasm/parser"
	"github.com/kegliz/qasmplay/qc/circuit"
	"github.com/kegliz/qasmplay/qc/executor"
	"github.com/kegliz/qasmplay/qc/qcerr"

	// Import backends to register them with qc/simulator's registry.
	_ "github.com/kegliz/qasmplay/qc/simulator/itsu"
	_ "github.com/kegliz/qasmplay/qc/simulator/stabilizer"
	_ "github.com/kegliz/qasmplay/qc/simulator/statevector"
)

// RunRequest is the body of POST /api/run: an OPENQASM 2.0 source string
// plus the execution parameters the CLI also exposes.
type RunRequest struct {
	Source  string `json:"source"`
	Backend string `json:"backend"`
	Shots   int    `json:"shots"`
	Seed    int64  `json:"seed"`
}

// RunResponse reports the resulting measurement histogram.
type RunResponse struct {
	Histogram  map[string]int `json:"histogram"`
	Backend    string         `json:"backend"`
	Shots      int            `json:"shots"`
	DurationMs float64        `json:"duration_ms"`
}

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// HealthHandler is the handler for the /health endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// RunProgram is the handler for the POST /api/run endpoint: it lexes,
// parses and compiles the submitted OPENQASM source, then executes it
// against the requested backend for the requested number of shots.
func (a *appServer) RunProgram(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Backend == "" {
		req.Backend = a.cfg.Backend
	}
	if req.Shots <= 0 {
		req.Shots = a.cfg.Shots
	}
	if req.Seed == 0 {
		req.Seed = a.cfg.Seed
	}

	prog, err := parser.Parse(req.Source)
	if err != nil {
		l.Debug().Err(err).Msg("parse failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	compiled, err := circuit.Compile(prog)
	if err != nil {
		l.Debug().Err(err).Msg("compile failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ex := executor.New(req.Backend, req.Shots, a.cfg.Workers, req.Seed, l.Logger)
	hist, metrics, err := ex.Run(compiled)
	if err != nil {
		l.Error().Err(err).Str("backend", req.Backend).Msg("run failed")
		status := http.StatusInternalServerError
		var circuitErr *qcerr.CircuitError
		if errors.As(err, &circuitErr) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, RunResponse{
		Histogram:  hist,
		Backend:    req.Backend,
		Shots:      req.Shots,
		DurationMs: float64(metrics.Elapsed.Microseconds()) / 1000.0,
	})
}
