package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/jobdex/internal/transport/api"
)

// InvalidParamError reports a query or path parameter that could not be bound.
type InvalidParamError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.ParamName, e.Err)
}

func (e *InvalidParamError) Unwrap() error { return e.Err }

// ServerOptions configures Handler.
type ServerOptions struct {
	BaseRouter  chi.Router
	Middlewares []func(http.Handler) http.Handler
	// WriteMiddlewares wrap only the routes that modify the index.
	WriteMiddlewares []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler registers the API routes on opts.BaseRouter (a new router when nil).
func Handler(s *Server, opts ServerOptions) http.Handler {
	r := opts.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if opts.ErrorHandlerFunc == nil {
		opts.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		}
	}
	w := &wrapper{s: s, errorHandler: opts.ErrorHandlerFunc}

	r.NotFound(func(rw http.ResponseWriter, _ *http.Request) {
		writeError(rw, http.StatusNotFound, api.ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(rw http.ResponseWriter, _ *http.Request) {
		writeError(rw, http.StatusMethodNotAllowed, api.ErrorCodeMethodNotAllowed, "method not allowed")
	})

	r.Group(func(r chi.Router) {
		r.Use(opts.Middlewares...)
		r.Get("/", s.Info)
		r.Get("/health", s.HealthCheck)
		r.Get("/metrics", s.Metrics)
		r.Get("/jobs", w.SearchJobs)
		r.Get("/jobs/{id}", w.GetJob)
		r.With(opts.WriteMiddlewares...).Post("/jobs", s.CreateJob)
	})

	return r
}

// wrapper binds request parameters before calling the server.
type wrapper struct {
	s            *Server
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// SearchJobs binds GET /jobs query parameters.
func (w *wrapper) SearchJobs(rw http.ResponseWriter, r *http.Request) {
	var params api.SearchJobsParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"q", &params.Q},
		{"organisation", &params.Organisation},
		{"location", &params.Location},
		{"grade", &params.Grade},
		{"assignmentType", &params.AssignmentType},
		{"profession", &params.Profession},
		{"professions", &params.Professions},
		{"grades", &params.Grades},
		{"assignments", &params.Assignments},
		{"workingPatterns", &params.WorkingPatterns},
		{"workLocations", &params.WorkLocations},
		{"salaryMin", &params.SalaryMin},
		{"salaryMax", &params.SalaryMax},
		{"page", &params.Page},
		{"pageSize", &params.PageSize},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			w.errorHandler(rw, r, &InvalidParamError{ParamName: b.name, Err: err})
			return
		}
	}

	w.s.SearchJobs(rw, r, params)
}

// GetJob binds the {id} path parameter.
func (w *wrapper) GetJob(rw http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		w.errorHandler(rw, r, &InvalidParamError{ParamName: "id", Err: err})
		return
	}

	w.s.GetJob(rw, r, id)
}
