package http

import (
	"net/http"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/pkg/ballotsdk"
	"github.com/aussiebroadwan/ballot/pkg/httpx"
)

type ProposalHandler struct {
	Proposals *service.ProposalService
	Votes     *service.VoteService
	Comments  *service.CommentService
}

// List godoc
//
//	@Summary		List proposals
//	@Description	Lists proposals with their tallies. Deadlines are applied before filtering.
//	@Tags			Proposals
//	@Produce		json
//	@Param			status	query		string		false	"active, closed or expired"
//	@Param			tag		query		[]string	false	"Required tag, repeatable"	collectionFormat(multi)
//	@Param			q		query		string		false	"Case-insensitive search over title and description"
//	@Param			sort	query		string		false	"newest (default) or ending_soon"
//	@Success		200		{array}		ballotsdk.ProposalSummary
//	@Failure		400		{object}	ballotsdk.ErrorResponse
//	@Router			/v1/proposals [get].
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts service.ListOptions
	if s := q.Get("status"); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, ballotsdk.ErrorCodeValidationFailed, err.Error())
			return
		}
		opts.Status = status
	}
	sort, err := service.ParseSortOrder(q.Get("sort"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	opts.Sort = sort
	opts.Search = q.Get("q")
	for _, t := range q["tag"] {
		opts.Tags = append(opts.Tags, domain.SplitTags(t)...)
	}

	list, err := h.Proposals.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ballotsdk.ProposalSummary, len(list))
	for i, p := range list {
		out[i] = toSummary(p)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Get godoc
//
//	@Summary	Get a proposal
//	@Tags		Proposals
//	@Produce	json
//	@Param		id	path		int	true	"Proposal ID"
//	@Success	200	{object}	ballotsdk.ProposalDetails
//	@Failure	404	{object}	ballotsdk.ErrorResponse
//	@Router		/v1/proposals/{id} [get].
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Proposals.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDetails(p))
}

// Create godoc
//
//	@Summary	Create a proposal
//	@Tags		Proposals
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		ballotsdk.CreateProposalRequest	true	"New proposal"
//	@Success	201		{object}	ballotsdk.Proposal
//	@Failure	400		{object}	ballotsdk.ErrorResponse
//	@Failure	401		{object}	ballotsdk.ErrorResponse
//	@Router		/v1/proposals [post].
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ballotsdk.CreateProposalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.Proposals.Create(r.Context(), service.CreateProposalInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		AuthorID:    httpx.UserID(r.Context()),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProposal(p))
}

// CastVote godoc
//
//	@Summary	Vote on a proposal
//	@Tags		Proposals
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int							true	"Proposal ID"
//	@Param		request	body		ballotsdk.CastVoteRequest	true	"yes, no or abstain"
//	@Success	201		{object}	ballotsdk.Vote
//	@Failure	400		{object}	ballotsdk.ErrorResponse
//	@Failure	401		{object}	ballotsdk.ErrorResponse
//	@Failure	404		{object}	ballotsdk.ErrorResponse
//	@Failure	409		{object}	ballotsdk.ErrorResponse	"already_voted or voting_closed"
//	@Router		/v1/proposals/{id}/votes [post].
func (h *ProposalHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ballotsdk.CastVoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.Votes.Cast(r.Context(), id, httpx.UserID(r.Context()), domain.VoteOption(req.Option))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toVote(v))
}

// AddComment godoc
//
//	@Summary	Comment on a proposal
//	@Tags		Proposals
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int							true	"Proposal ID"
//	@Param		request	body		ballotsdk.AddCommentRequest	true	"Comment text"
//	@Success	201		{object}	ballotsdk.Comment
//	@Failure	400		{object}	ballotsdk.ErrorResponse
//	@Failure	401		{object}	ballotsdk.ErrorResponse
//	@Failure	404		{object}	ballotsdk.ErrorResponse
//	@Router		/v1/proposals/{id}/comments [post].
func (h *ProposalHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ballotsdk.AddCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.Comments.Add(r.Context(), id, httpx.UserID(r.Context()), req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toComment(c))
}

// SetStatus godoc
//
//	@Summary		Override a proposal's status
//	@Description	Administrative override. Any status may be set on any proposal.
//	@Tags			Proposals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int							true	"Proposal ID"
//	@Param			request	body		ballotsdk.SetStatusRequest	true	"active, closed or expired"
//	@Success		200		{object}	ballotsdk.Proposal
//	@Failure		400		{object}	ballotsdk.ErrorResponse
//	@Failure		401		{object}	ballotsdk.ErrorResponse
//	@Failure		403		{object}	ballotsdk.ErrorResponse
//	@Failure		404		{object}	ballotsdk.ErrorResponse
//	@Router			/v1/proposals/{id}/status [put].
func (h *ProposalHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ballotsdk.SetStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.Proposals.SetStatus(r.Context(), id, domain.ProposalStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProposal(p))
}

// Delete godoc
//
//	@Summary	Delete a proposal
//	@Tags		Proposals
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Proposal ID"
//	@Success	204
//	@Failure	401	{object}	ballotsdk.ErrorResponse
//	@Failure	403	{object}	ballotsdk.ErrorResponse
//	@Failure	404	{object}	ballotsdk.ErrorResponse
//	@Router		/v1/proposals/{id} [delete].
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Proposals.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
