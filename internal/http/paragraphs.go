package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
	"github.com/goliatone/go-cms-bootstrap/internal/tabs"
	"github.com/goliatone/go-cms-bootstrap/internal/validation"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

type paragraphRequest struct {
	Content map[string]any `json:"content"`
}

type preferenceRequest struct {
	Group         string `json:"group"`
	Discriminator string `json:"discriminator"`
}

type searchResponse struct {
	Query   string            `json:"query"`
	Entries map[string]bool   `json:"entries"`
	Items   map[string][]bool `json:"items"`
}

type paragraphResponse struct {
	Paragraph *paragraphs.Paragraph `json:"paragraph"`
	HTML      string                `json:"html"`
}

func (api *API) registerParagraphRoutes(mux *http.ServeMux) {
	field := api.path("/paragraphs/{entity_type}/{entity_id}/{field}")
	add := api.path("/paragraphs/add/{paragraph_type}/{entity_type}/{entity_field}/{entity_id}")
	item := api.path("/paragraphs/{id}")

	mux.HandleFunc("GET "+field, api.handleRenderField)
	mux.HandleFunc("GET "+field+"/search", api.handleSearchField)
	mux.HandleFunc("GET "+add, api.handleAddForm)
	mux.HandleFunc("POST "+add, api.handleAddSubmit)
	mux.HandleFunc("GET "+item, api.handleViewParagraph)
	mux.HandleFunc("GET "+item+"/edit", api.handleEditForm)
	mux.HandleFunc("POST "+item+"/edit", api.handleEditSubmit)
	mux.HandleFunc("POST "+item+"/duplicate", api.handleDuplicate)
	mux.HandleFunc("POST "+item+"/delete", api.handleDelete)
	mux.HandleFunc("POST "+api.path("/tabs/preference"), api.handlePreference)
}

func fieldRef(r *http.Request) paragraphs.FieldRef {
	return paragraphs.FieldRef{
		EntityType: r.PathValue("entity_type"),
		EntityID:   r.PathValue("entity_id"),
		Field:      r.PathValue("field"),
	}
}

func (api *API) host(r *http.Request, ref paragraphs.FieldRef) tabs.Host {
	host := tabs.Host{
		EntityType:          ref.EntityType,
		EntityID:            ref.EntityID,
		Field:               ref.Field,
		Destination:         r.URL.Path,
		FieldPermissionType: api.fieldPermissions[ref.Field],
	}
	if api.owners != nil {
		host.OwnerID = api.owners(r.Context(), ref.EntityType, ref.EntityID)
	}
	return host
}

func (api *API) renderRequest(w http.ResponseWriter, r *http.Request, account interfaces.Account) (tabs.RenderRequest, error) {
	ref := fieldRef(r)
	items, err := api.paragraphs.Items(r.Context(), ref)
	if err != nil {
		return tabs.RenderRequest{}, err
	}
	return tabs.RenderRequest{
		Host:       api.host(r, ref),
		Items:      items,
		Allowed:    api.paragraphs.Types().Allowed(ref.Field),
		Account:    account,
		Preference: api.preferenceStore(w, r).Get(api.preference.Key),
	}, nil
}

func (api *API) handleRenderField(w http.ResponseWriter, r *http.Request) {
	account := api.accounts(r)
	if !requireAccount(w, account, permissions.AccessContent) {
		return
	}
	req, err := api.renderRequest(w, r, account)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := api.formatter.Render(r.Context(), req)
	if err != nil {
		api.logger.Error("http.paragraphs.render_failed", "field", req.Host.Field, "error", err)
		writeError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, out)
}

// handleSearchField evaluates the live filter server-side and reports which
// tabs and items stay visible.
func (api *API) handleSearchField(w http.ResponseWriter, r *http.Request) {
	account := api.accounts(r)
	if !requireAccount(w, account, permissions.AccessContent) {
		return
	}
	req, err := api.renderRequest(w, r, account)
	if err != nil {
		writeError(w, err)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	view := api.formatter.View(r.Context(), req)
	visibility := tabs.Filter(query, view.Result)
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Entries: visibility.Entries,
		Items:   visibility.Items,
	})
}

func (api *API) addTarget(w http.ResponseWriter, r *http.Request) (paragraphs.ParagraphType, paragraphs.FieldRef, interfaces.Account, bool) {
	ref := paragraphs.FieldRef{
		EntityType: r.PathValue("entity_type"),
		EntityID:   r.PathValue("entity_id"),
		Field:      r.PathValue("entity_field"),
	}
	bundle := strings.ToLower(strings.TrimSpace(r.PathValue("paragraph_type")))
	def, ok := api.paragraphs.Types().Get(bundle)
	if !ok {
		writeError(w, &paragraphs.NotFoundError{Resource: "paragraph_type", Key: bundle})
		return def, ref, nil, false
	}
	account := api.accounts(r)
	allowed := permissions.AddAccess(account, permissions.AddRequest{
		Mode:                api.accessMode,
		Bundle:              def.Bundle,
		FieldName:           ref.Field,
		FieldPermissionType: api.fieldPermissions[ref.Field],
	})
	if !allowed {
		writeError(w, fmt.Errorf("add %s to %s: %w", def.Bundle, ref.Field, permissions.ErrPermissionDenied))
		return def, ref, nil, false
	}
	if !api.paragraphs.Types().Allows(ref.Field, def.Bundle) {
		writeError(w, paragraphs.ErrTypeNotAllowed)
		return def, ref, nil, false
	}
	return def, ref, account, true
}

func (api *API) addForm(r *http.Request, def paragraphs.ParagraphType, values map[string]any, errs map[string]string) formView {
	return formView{
		Title:       "Add " + def.Label,
		Description: def.Description,
		Bundle:      def.Bundle,
		Action:      r.URL.RequestURI(),
		Destination: safeDestination(r.URL.Query().Get("destination")),
		Submit:      "Save",
		Modal:       isAjax(r),
		Fields:      schemaFields(def.Schema),
		Values:      values,
		Errors:      errs,
	}
}

func (api *API) writeForm(w http.ResponseWriter, status int, view formView) {
	out, err := api.forms.Render(paragraphFormTemplate, view.data())
	if err != nil {
		api.logger.Error("http.paragraphs.form_failed", "paragraph_type", view.Bundle, "error", err)
		writeError(w, err)
		return
	}
	writeHTML(w, status, out)
}

func (api *API) handleAddForm(w http.ResponseWriter, r *http.Request) {
	def, _, _, ok := api.addTarget(w, r)
	if !ok {
		return
	}
	api.writeForm(w, http.StatusOK, api.addForm(r, def, nil, nil))
}

func (api *API) handleAddSubmit(w http.ResponseWriter, r *http.Request) {
	def, ref, account, ok := api.addTarget(w, r)
	if !ok {
		return
	}
	content, ok := api.submittedContent(w, r, def)
	if !ok {
		return
	}
	created, err := api.paragraphs.Add(r.Context(), paragraphs.AddInput{
		Field:   ref,
		Type:    def.Bundle,
		Content: content,
		OwnerID: actorID(account),
		ActorID: actorID(account),
	})
	if err != nil {
		api.writeSubmitError(w, r, api.addForm(r, def, content, nil), err)
		return
	}
	if wantsJSON(r) || isAjax(r) || !redirectDestination(w, r) {
		writeJSON(w, http.StatusCreated, created)
	}
}

// submittedContent reads JSON {"content": {...}} bodies or form posts.
func (api *API) submittedContent(w http.ResponseWriter, r *http.Request, def paragraphs.ParagraphType) (map[string]any, bool) {
	if wantsJSON(r) {
		var body paragraphRequest
		if err := decodeJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
			return nil, false
		}
		return body.Content, true
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return nil, false
	}
	return formContent(r, schemaFields(def.Schema)), true
}

// writeSubmitError re-renders the form with field errors for browser posts
// and answers JSON otherwise.
func (api *API) writeSubmitError(w http.ResponseWriter, r *http.Request, view formView, err error) {
	if wantsJSON(r) || !errors.Is(err, validation.ErrSchemaValidation) {
		writeError(w, err)
		return
	}
	view.Errors = validation.FieldErrors(err)
	api.writeForm(w, http.StatusUnprocessableEntity, view)
}

// loadOperable fetches the paragraph named by the path and checks the
// account may operate on its field.
func (api *API) loadOperable(w http.ResponseWriter, r *http.Request) (*paragraphs.Paragraph, interfaces.Account, bool) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return nil, nil, false
	}
	paragraph, err := api.paragraphs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, nil, false
	}
	account := api.accounts(r)
	ref := paragraph.Field()
	entity := permissions.Entity{Type: ref.EntityType, ID: ref.EntityID}
	if api.owners != nil {
		entity.OwnerID = api.owners(r.Context(), ref.EntityType, ref.EntityID)
	}
	if !permissions.OperationAccess(account, entity, ref.Field) {
		writeError(w, fmt.Errorf("operate on %s: %w", ref.Field, permissions.ErrPermissionDenied))
		return nil, nil, false
	}
	return paragraph, account, true
}

func (api *API) handleViewParagraph(w http.ResponseWriter, r *http.Request) {
	account := api.accounts(r)
	if !requireAccount(w, account, permissions.AccessContent) {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	paragraph, err := api.paragraphs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	html, err := api.paragraphs.RenderPayload(r.Context(), paragraph)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paragraphResponse{Paragraph: paragraph, HTML: html})
}

func (api *API) editForm(r *http.Request, paragraph *paragraphs.Paragraph, values map[string]any) formView {
	def, _ := api.paragraphs.Types().Get(paragraph.Type)
	label := def.Label
	if label == "" {
		label = paragraph.Type
	}
	return formView{
		Title:       "Edit " + label,
		Description: def.Description,
		Bundle:      paragraph.Type,
		Action:      r.URL.RequestURI(),
		Destination: safeDestination(r.URL.Query().Get("destination")),
		Submit:      "Save",
		Modal:       isAjax(r),
		Fields:      schemaFields(def.Schema),
		Values:      values,
	}
}

func (api *API) handleEditForm(w http.ResponseWriter, r *http.Request) {
	paragraph, _, ok := api.loadOperable(w, r)
	if !ok {
		return
	}
	api.writeForm(w, http.StatusOK, api.editForm(r, paragraph, paragraph.Content))
}

func (api *API) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	paragraph, account, ok := api.loadOperable(w, r)
	if !ok {
		return
	}
	def, _ := api.paragraphs.Types().Get(paragraph.Type)
	content, ok := api.submittedContent(w, r, def)
	if !ok {
		return
	}
	updated, err := api.paragraphs.Update(r.Context(), paragraphs.UpdateInput{
		ID:      paragraph.ID,
		Content: content,
		ActorID: actorID(account),
	})
	if err != nil {
		api.writeSubmitError(w, r, api.editForm(r, paragraph, content), err)
		return
	}
	if wantsJSON(r) || isAjax(r) || !redirectDestination(w, r) {
		writeJSON(w, http.StatusOK, updated)
	}
}

func (api *API) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	paragraph, account, ok := api.loadOperable(w, r)
	if !ok {
		return
	}
	created, err := api.paragraphs.Duplicate(r.Context(), paragraphs.DuplicateRequest{
		ID:      paragraph.ID,
		ActorID: actorID(account),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsJSON(r) || isAjax(r) || !redirectDestination(w, r) {
		writeJSON(w, http.StatusCreated, created)
	}
}

func (api *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	paragraph, account, ok := api.loadOperable(w, r)
	if !ok {
		return
	}
	err := api.paragraphs.Delete(r.Context(), paragraphs.DeleteRequest{
		ID:      paragraph.ID,
		ActorID: actorID(account),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsJSON(r) || isAjax(r) || !redirectDestination(w, r) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handlePreference records the active tab of a group for clients without
// script support.
func (api *API) handlePreference(w http.ResponseWriter, r *http.Request) {
	var body preferenceRequest
	if wantsJSON(r) {
		if err := decodeJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
			return
		}
		body.Group = r.PostForm.Get("group")
		body.Discriminator = r.PostForm.Get("discriminator")
	}
	body.Group = strings.TrimSpace(body.Group)
	body.Discriminator = strings.TrimSpace(body.Discriminator)
	if body.Group == "" || body.Discriminator == "" {
		writeError(w, fmt.Errorf("group and discriminator are required: %w", errBadRequest))
		return
	}
	api.preferenceStore(w, r).Set(api.preference.Key, body.Group, body.Discriminator)
	if wantsJSON(r) || !redirectDestination(w, r) {
		w.WriteHeader(http.StatusNoContent)
	}
}
