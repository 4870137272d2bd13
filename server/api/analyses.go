package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/mawais/slc/server/dao"
	"github.com/mawais/slc/server/middle"
	"github.com/mawais/slc/server/result"
	"github.com/mawais/slc/server/serr"
)

func modelForAnalysis(a dao.Analysis) AnalysisModel {
	return AnalysisModel{
		URI:      PathPrefix + "/analyses/" + a.ID.String(),
		ID:       a.ID.String(),
		Owner:    a.Owner.String(),
		Name:     a.Name,
		Source:   a.Source,
		Tokens:   modelForTokens(a.Tokens),
		Created:  a.Created.Format(time.RFC3339),
		Modified: a.Modified.Format(time.RFC3339),
	}
}

// HTTPAnalyze returns a HandlerFunc that runs the full analysis pipeline on
// the source in the request body and returns the results without persisting
// anything. Login is not required.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain a value denoting whether the client making the request is
// logged-in.
func (api API) HTTPAnalyze() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epAnalyze)
}

func (api API) epAnalyze(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var analyzeReq AnalyzeRequest
	err := parseJSON(req, &analyzeReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	anal := api.Backend.AnalyzeSource(analyzeReq.Source)
	resp := modelForAnalysisResult(anal)

	userStr := "unauthed client"
	if loggedIn {
		user := req.Context().Value(middle.AuthUser).(dao.User)
		userStr = "user '" + user.Username + "'"
	}

	return result.OK(resp, "%s analyzed %d bytes of source", userStr, len(analyzeReq.Source))
}

// HTTPCreateAnalysis returns a HandlerFunc that scans the source in the
// request body and stores it as a new named analysis owned by the logged-in
// user.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the logged-in user of the client making the request.
func (api API) HTTPCreateAnalysis() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateAnalysis)
}

func (api API) epCreateAnalysis(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var createReq AnalysisRequest
	err := parseJSON(req, &createReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if createReq.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	created, err := api.Backend.CreateAnalysis(req.Context(), user.ID, createReq.Name, createReq.Source)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := modelForAnalysis(created)

	return result.Created(resp, "user '%s' created analysis '%s' (%s)", user.Username, resp.Name, resp.ID)
}

// HTTPGetAllAnalyses returns a HandlerFunc that retrieves the stored
// analyses owned by the logged-in user. An admin user gets every stored
// analysis.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the logged-in user of the client making the request.
func (api API) HTTPGetAllAnalyses() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllAnalyses)
}

func (api API) epGetAllAnalyses(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var all []dao.Analysis
	var err error
	if user.Role == dao.Admin {
		all, err = api.Backend.GetAllAnalyses(req.Context())
	} else {
		all, err = api.Backend.GetAnalysesByOwner(req.Context(), user.ID)
	}
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]AnalysisModel, len(all))
	for i := range all {
		resp[i] = modelForAnalysis(all[i])
	}

	return result.OK(resp, "user '%s' got %d analyses", user.Username, len(resp))
}

// HTTPGetAnalysis returns a HandlerFunc that gets a stored analysis. Users
// may retrieve their own analyses; only an admin user can retrieve analyses
// owned by other users.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the ID of the analysis being operated on and the logged-in user of
// the client making the request.
func (api API) HTTPGetAnalysis() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAnalysis)
}

func (api API) epGetAnalysis(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	a, err := api.Backend.GetAnalysis(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError("could not get analysis: " + err.Error())
	}

	if a.Owner != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get analysis %s: forbidden", user.Username, user.Role, id)
	}

	resp := modelForAnalysis(a)

	return result.OK(resp, "user '%s' got analysis '%s'", user.Username, a.Name)
}

// HTTPGetAnalysisResults returns a HandlerFunc that re-runs the full
// analysis pipeline on the stored source of an analysis and returns the
// results of every phase. Users may get results for their own analyses; only
// an admin user can do so for analyses owned by other users.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the ID of the analysis being operated on and the logged-in user of
// the client making the request.
func (api API) HTTPGetAnalysisResults() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAnalysisResults)
}

func (api API) epGetAnalysisResults(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	a, err := api.Backend.GetAnalysis(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError("could not get analysis: " + err.Error())
	}

	if a.Owner != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get results of analysis %s: forbidden", user.Username, user.Role, id)
	}

	anal := api.Backend.AnalyzeSource(a.Source)
	resp := modelForAnalysisResult(anal)

	return result.OK(resp, "user '%s' got results of analysis '%s'", user.Username, a.Name)
}

// HTTPUpdateAnalysis returns a HandlerFunc that replaces the name and source
// of a stored analysis. The source is re-scanned. Users may update their own
// analyses; only an admin user can update analyses owned by other users.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the ID of the analysis being operated on and the logged-in user of
// the client making the request.
func (api API) HTTPUpdateAnalysis() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epUpdateAnalysis)
}

func (api API) epUpdateAnalysis(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetAnalysis(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError("could not get analysis: " + err.Error())
	}

	if existing.Owner != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) update analysis %s: forbidden", user.Username, user.Role, id)
	}

	var updateReq AnalysisRequest
	err = parseJSON(req, &updateReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if updateReq.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	updated, err := api.Backend.UpdateAnalysis(req.Context(), id.String(), updateReq.Name, updateReq.Source)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := modelForAnalysis(updated)

	return result.Created(resp, "user '%s' updated analysis '%s' (%s)", user.Username, resp.Name, resp.ID)
}

// HTTPDeleteAnalysis returns a HandlerFunc that deletes a stored analysis.
// Users may delete their own analyses; only an admin user can delete
// analyses owned by other users.
//
// The handler has requirements for the request context it receives, and if
// the requirements are not met it may return an HTTP-500. The context must
// contain the ID of the analysis being deleted and the logged-in user of the
// client making the request.
func (api API) HTTPDeleteAnalysis() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteAnalysis)
}

func (api API) epDeleteAnalysis(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetAnalysis(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError("could not get analysis: " + err.Error())
	}

	if existing.Owner != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete analysis %s: forbidden", user.Username, user.Role, id)
	}

	deleted, err := api.Backend.DeleteAnalysis(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete analysis: " + err.Error())
	}

	return result.NoContent("user '%s' deleted analysis '%s' (%s)", user.Username, deleted.Name, id)
}
