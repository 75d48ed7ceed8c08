package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"
	"organization-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles HTTP requests for the organization
type OrganizationHandler struct {
	service       service.OrganizationServiceInterface
	repairDefault bool
}

// NewOrganizationHandler creates a new organization handler. repairDefault is
// used by reconcile requests that do not say whether to repair.
func NewOrganizationHandler(service service.OrganizationServiceInterface, repairDefault bool) *OrganizationHandler {
	return &OrganizationHandler{service: service, repairDefault: repairDefault}
}

// ReconcileRequest carries the authoritative back-references per relation
type ReconcileRequest struct {
	Relations map[string][]models.ID `json:"relations"`
	Repair    *bool                  `json:"repair,omitempty"`
}

// InvariantsResponse lists the invariant breaches of an organization
type InvariantsResponse struct {
	OrganizationID models.ID                   `json:"organization_id"`
	Consistent     bool                        `json:"consistent"`
	Violations     []models.InvariantViolation `json:"violations"`
}

// ProvisionOrganization handles POST /api/v1/organizations
// @Summary Provision the organization
// @Description Create the deployment's organization from its flat record
// @Tags organizations
// @Accept json
// @Produce json
// @Success 201 {object} models.Organization "Organization provisioned"
// @Failure 400 {object} map[string]interface{} "Invalid organization fields"
// @Failure 409 {object} map[string]interface{} "Organization already exists"
// @Failure 422 {object} map[string]interface{} "Invariant violated"
// @Security BearerAuth
// @Router /organizations [post]
func (h *OrganizationHandler) ProvisionOrganization(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	org, err := h.service.Provision(c.Request.Context(), fields)
	if err != nil {
		writeError(c, err, "provision organization")
		return
	}

	c.JSON(http.StatusCreated, org)
}

// GetCurrentOrganization handles GET /api/v1/organizations/current
// @Summary Get the deployment's organization
// @Tags organizations
// @Produce json
// @Success 200 {object} models.Organization
// @Failure 404 {object} map[string]interface{} "Organization not provisioned"
// @Router /organizations/current [get]
func (h *OrganizationHandler) GetCurrentOrganization(c *gin.Context) {
	org, err := h.service.GetCurrent(c.Request.Context())
	if err != nil {
		writeError(c, err, "get organization")
		return
	}

	c.JSON(http.StatusOK, org)
}

// GetOrganization handles GET /api/v1/organizations/:id
// @Summary Get organization by ID
// @Description Get the flat record of an organization, settings included
// @Tags organizations
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Invalid organization ID"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	flat, err := h.service.GetFlat(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "get organization")
		return
	}

	c.JSON(http.StatusOK, flat)
}

// GetInvariants handles GET /api/v1/organizations/:id/invariants
// @Summary Check organization invariants
// @Tags organizations
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} InvariantsResponse
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Router /organizations/{id}/invariants [get]
func (h *OrganizationHandler) GetInvariants(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	violations, err := h.service.CheckInvariants(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "check organization invariants")
		return
	}

	c.JSON(http.StatusOK, InvariantsResponse{
		OrganizationID: id,
		Consistent:     len(violations) == 0,
		Violations:     violations,
	})
}

// UpdateSettings handles PUT /api/v1/organizations/:id/settings
// @Summary Replace the organization settings
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} models.Organization
// @Failure 400 {object} map[string]interface{} "Invalid settings"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 422 {object} map[string]interface{} "Active theme is not one of the themes"
// @Security BearerAuth
// @Router /organizations/{id}/settings [put]
func (h *OrganizationHandler) UpdateSettings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	org, err := h.service.UpdateSettings(c.Request.Context(), id, fields)
	if err != nil {
		writeError(c, err, "update organization settings")
		return
	}

	c.JSON(http.StatusOK, org)
}

// AttachRelation handles POST /api/v1/organizations/:id/relations/:relation
// @Summary Attach a related entity
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Param relation path string true "Relation field, e.g. committee_ids"
// @Param body body service.RelationRequest true "Related entity"
// @Success 200 {object} models.Organization
// @Failure 400 {object} map[string]interface{} "Unknown relation or invalid id"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Security BearerAuth
// @Router /organizations/{id}/relations/{relation} [post]
func (h *OrganizationHandler) AttachRelation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.RelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	org, err := h.service.AttachRelation(c.Request.Context(), id, c.Param("relation"), &req)
	if err != nil {
		writeError(c, err, "attach relation")
		return
	}

	c.JSON(http.StatusOK, org)
}

// DetachRelation handles DELETE /api/v1/organizations/:id/relations/:relation/:refId
// @Summary Detach a related entity
// @Tags organizations
// @Produce json
// @Param id path int true "Organization ID"
// @Param relation path string true "Relation field, e.g. theme_ids"
// @Param refId path int true "Related entity ID"
// @Success 200 {object} models.Organization
// @Failure 400 {object} map[string]interface{} "Unknown relation or invalid id"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Security BearerAuth
// @Router /organizations/{id}/relations/{relation}/{refId} [delete]
func (h *OrganizationHandler) DetachRelation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	refID, ok := parseID(c, "refId")
	if !ok {
		return
	}

	org, err := h.service.DetachRelation(c.Request.Context(), id, c.Param("relation"), refID)
	if err != nil {
		writeError(c, err, "detach relation")
		return
	}

	c.JSON(http.StatusOK, org)
}

// Reconcile handles POST /api/v1/organizations/:id/reconcile
// @Summary Reconcile id lists with their back-references
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path int true "Organization ID"
// @Param body body ReconcileRequest true "Authoritative back-references"
// @Success 200 {object} service.ReconcileReport
// @Failure 400 {object} map[string]interface{} "Unknown relation or invalid id"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Security BearerAuth
// @Router /organizations/{id}/reconcile [post]
func (h *OrganizationHandler) Reconcile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	repair := h.repairDefault
	if req.Repair != nil {
		repair = *req.Repair
	}

	report, err := h.service.Reconcile(c.Request.Context(), id, req.Relations, repair)
	if err != nil {
		writeError(c, err, "reconcile organization")
		return
	}

	c.JSON(http.StatusOK, report)
}

// DeprovisionOrganization handles DELETE /api/v1/organizations/:id
// @Summary Delete the organization
// @Tags organizations
// @Param id path int true "Organization ID"
// @Success 204 "Organization deleted"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Security BearerAuth
// @Router /organizations/{id} [delete]
func (h *OrganizationHandler) DeprovisionOrganization(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deprovision(c.Request.Context(), id); err != nil {
		writeError(c, err, "delete organization")
		return
	}

	c.Status(http.StatusNoContent)
}

// bindFields decodes a JSON object keeping numbers as json.Number, so that
// integer fields are not silently read as floats.
func bindFields(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if c.Request.Body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": "request body is empty"})
		return nil, false
	}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		details := "request body must be a JSON object"
		if err != nil {
			details = err.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": details})
		return nil, false
	}
	return fields, true
}

func parseID(c *gin.Context, param string) (models.ID, bool) {
	n, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || !models.ID(n).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + ": must be a positive integer"})
		return 0, false
	}
	return models.ID(n), true
}

func writeError(c *gin.Context, err error, action string) {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": validationErr.Field})
	case errors.Is(err, apperrors.ErrUnknownRelation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAlreadyExists(err), apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsInvariant(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action, "details": err.Error()})
	}
}
