package handler

import (
	"net/http"
	"testing"

	"ai-site-server/internal/repository"
	"ai-site-server/internal/service"
	"ai-site-server/internal/testutils"

	"gorm.io/gorm"
)

var (
	testStore   repository.UserStore
	testHandler *Handler
)

func setupTestHandler(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := testutils.SetupDB(t)
	testStore = repository.NewUserRepository(gdb)
	testHandler = New(
		service.NewAuthService(testStore),
		service.NewAvatarService(testStore),
		service.NewChatService(http.DefaultClient),
		testStore,
	)
	return gdb
}
