package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/prepll/internal/plerrors"
	"github.com/dekarrin/prepll/server/result"
	"github.com/dekarrin/prepll/server/serr"
)

// HTTPCreateAnalysis returns a HandlerFunc that prepares the grammar in the
// request and stores the result.
func (api API) HTTPCreateAnalysis() http.HandlerFunc {
	return Endpoint(api.epCreateAnalysis)
}

// POST /analyses: prepare a grammar.
func (api API) epCreateAnalysis(req *http.Request) result.Result {
	var createReq AnalysisRequest
	err := parseJSON(req, &createReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if len(createReq.Productions) < 1 {
		return result.BadRequest("productions: property is empty or missing from request", "empty productions")
	}

	a, err := api.Backend.CreateAnalysis(req.Context(), createReq.Productions, createReq.Word)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(plerrors.DisplayMessage(err), err.Error())
		} else if errors.Is(err, serr.ErrGrammar) {
			return result.UnprocessableEntity(plerrors.DisplayMessage(err), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := analysisToModel(a)
	return result.Created(resp, "created analysis %s", resp.ID).WithHeader("Location", resp.URI)
}

// HTTPGetAllAnalyses returns a HandlerFunc that retrieves every stored
// analysis.
func (api API) HTTPGetAllAnalyses() http.HandlerFunc {
	return Endpoint(api.epGetAllAnalyses)
}

// GET /analyses: get all analyses.
func (api API) epGetAllAnalyses(req *http.Request) result.Result {
	all, err := api.Backend.GetAllAnalyses(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]AnalysisModel, len(all))
	for i := range all {
		resp[i] = analysisToModel(all[i])
	}

	return result.OK(resp, "got all analyses")
}

// HTTPGetAnalysis returns a HandlerFunc that retrieves a single stored
// analysis.
func (api API) HTTPGetAnalysis() http.HandlerFunc {
	return Endpoint(api.epGetAnalysis)
}

// GET /analyses/{id}: get an analysis.
func (api API) epGetAnalysis(req *http.Request) result.Result {
	id := requireIDParam(req)

	a, err := api.Backend.GetAnalysis(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get analysis: " + err.Error())
	}

	return result.OK(analysisToModel(a), "got analysis %s", id)
}

// HTTPDeleteAnalysis returns a HandlerFunc that deletes a stored analysis.
func (api API) HTTPDeleteAnalysis() http.HandlerFunc {
	return Endpoint(api.epDeleteAnalysis)
}

// DELETE /analyses/{id}: delete an analysis.
func (api API) epDeleteAnalysis(req *http.Request) result.Result {
	id := requireIDParam(req)

	_, err := api.Backend.DeleteAnalysis(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete analysis: " + err.Error())
	}

	return result.NoContent("deleted analysis %s", id)
}
