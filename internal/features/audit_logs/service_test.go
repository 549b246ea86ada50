package audit_logs

import (
	"testing"
	"time"

	users_testing "flowboard-backend/internal/features/users/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_AuditLogs_WorkspaceSpecificLogs(t *testing.T) {
	service := GetAuditLogService()
	user1 := users_testing.CreateTestUser()
	user2 := users_testing.CreateTestUser()
	workspace1ID, workspace2ID := uuid.New(), uuid.New()

	service.WriteAuditLog("Test workspace1 log first", &user1.User.ID, &workspace1ID)
	service.WriteAuditLog("Test workspace1 log second", &user2.User.ID, &workspace1ID)
	service.WriteAuditLog("Test workspace2 log first", &user1.User.ID, &workspace2ID)
	service.WriteAuditLog("Test no workspace log", &user1.User.ID, nil)

	request := &GetAuditLogsRequest{Limit: 10, Offset: 0}

	workspace1Response, err := service.GetWorkspaceAuditLogs(workspace1ID, request)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(workspace1Response.AuditLogs))
	assert.Equal(t, int64(2), workspace1Response.Total)

	messages := extractMessages(workspace1Response.AuditLogs)
	assert.Contains(t, messages, "Test workspace1 log first")
	assert.Contains(t, messages, "Test workspace1 log second")
	for _, logEntry := range workspace1Response.AuditLogs {
		assert.Equal(t, &workspace1ID, logEntry.WorkspaceID)
		assert.NotNil(t, logEntry.UserEmail, "user email joined from the profile")
	}

	workspace2Response, err := service.GetWorkspaceAuditLogs(workspace2ID, request)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(workspace2Response.AuditLogs))

	// pagination
	limitedResponse, err := service.GetWorkspaceAuditLogs(workspace1ID,
		&GetAuditLogsRequest{Limit: 1, Offset: 0})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(limitedResponse.AuditLogs))
	assert.Equal(t, 1, limitedResponse.Limit)

	// beforeDate filter
	beforeTime := time.Now().UTC().Add(-1 * time.Minute)
	filteredResponse, err := service.GetWorkspaceAuditLogs(workspace1ID,
		&GetAuditLogsRequest{Limit: 10, BeforeDate: &beforeTime})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(filteredResponse.AuditLogs))
}

func extractMessages(logs []*AuditLogDTO) []string {
	messages := make([]string, len(logs))
	for i, logEntry := range logs {
		messages[i] = logEntry.Message
	}
	return messages
}
