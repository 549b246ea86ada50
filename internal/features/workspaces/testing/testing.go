package workspaces_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"flowboard-backend/internal/features/audit_logs"
	users_controllers "flowboard-backend/internal/features/users/controllers"
	users_enums "flowboard-backend/internal/features/users/enums"
	users_middleware "flowboard-backend/internal/features/users/middleware"
	users_services "flowboard-backend/internal/features/users/services"
	users_testing "flowboard-backend/internal/features/users/testing"
	workspaces_controllers "flowboard-backend/internal/features/workspaces/controllers"
	workspaces_dto "flowboard-backend/internal/features/workspaces/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateTestRouter builds a router with the full API surface mounted the
// same way main does it.
func CreateTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	users_controllers.GetUserController().RegisterRoutes(v1)
	workspaces_controllers.GetInviteController().RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	users_controllers.GetUserController().RegisterProtectedRoutes(protected)
	users_controllers.GetProfileController().RegisterRoutes(protected)
	workspaces_controllers.GetWorkspaceController().RegisterRoutes(protected)
	workspaces_controllers.GetInviteController().RegisterRoutes(protected)
	audit_logs.GetAuditLogController().RegisterRoutes(protected)

	audit_logs.SetupDependencies()

	return router
}

// CreateTestWorkspaceViaAPI creates a workspace through the HTTP surface
// and returns its response DTO.
func CreateTestWorkspaceViaAPI(
	router *gin.Engine,
	owner *users_testing.TestUser,
	name, slugValue string,
) *workspaces_dto.WorkspaceResponseDTO {
	request := workspaces_dto.CreateWorkspaceRequestDTO{Name: name, Slug: slugValue}

	w := MakeAPIRequest(router, "POST", "/api/v1/workspaces", "Bearer "+owner.Token, request)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf(
			"Failed to create workspace. Status: %d, Body: %s", w.Code, w.Body.String(),
		))
	}

	var response workspaces_dto.WorkspaceResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func CreateTestInviteViaAPI(
	router *gin.Engine,
	actor *users_testing.TestUser,
	workspaceID uuid.UUID,
	role users_enums.WorkspaceRole,
) *workspaces_dto.InviteResponseDTO {
	request := workspaces_dto.CreateInviteRequestDTO{Role: role}

	w := MakeAPIRequest(
		router,
		"POST",
		"/api/v1/workspaces/"+workspaceID.String()+"/invites",
		"Bearer "+actor.Token,
		request,
	)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf(
			"Failed to create invite. Status: %d, Body: %s", w.Code, w.Body.String(),
		))
	}

	var response workspaces_dto.InviteResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func AddMemberViaAPI(
	router *gin.Engine,
	actor *users_testing.TestUser,
	workspaceID uuid.UUID,
	email string,
	role users_enums.WorkspaceRole,
) {
	request := workspaces_dto.AddMemberRequestDTO{Email: email, Role: role}

	w := MakeAPIRequest(
		router,
		"POST",
		"/api/v1/workspaces/"+workspaceID.String()+"/members",
		"Bearer "+actor.Token,
		request,
	)
	if w.Code != http.StatusOK {
		panic("Failed to add member via API: " + w.Body.String())
	}
}

func MakeAPIRequest(
	router *gin.Engine,
	method, url, authToken string,
	body any,
) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
