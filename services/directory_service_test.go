package services_test

import (
	"context"
	"net/http"
	"testing"

	"restaurant-service/models"
	"restaurant-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newDirectoryFixture() (*memUserRepo, services.DirectoryService) {
	users := newMemUserRepo()
	return users, services.NewDirectoryService(users, zap.NewNop())
}

func TestDirectory_RosterRequiresManager(t *testing.T) {
	users, svc := newDirectoryFixture()
	users.addUser("rider", models.GroupDeliveryCrew)

	_, svcErr := svc.ListMembers(context.Background(), customerIdentity(), models.GroupDeliveryCrew)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Code)

	_, svcErr = svc.ListMembers(context.Background(), crewIdentity(), models.GroupDeliveryCrew)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Code)

	_, svcErr = svc.ListMembers(context.Background(), nil, models.GroupDeliveryCrew)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.Code)

	members, svcErr := svc.ListMembers(context.Background(), managerIdentity(), models.GroupDeliveryCrew)
	assert.Nil(t, svcErr)
	assert.Len(t, members, 1)
}

func TestDirectory_AddMember(t *testing.T) {
	users, svc := newDirectoryFixture()
	users.addUser("sana")

	added, svcErr := svc.AddMember(context.Background(), managerIdentity(), models.GroupDeliveryCrew, "sana")
	assert.Nil(t, svcErr)
	assert.Equal(t, "sana", added.Username)

	members, svcErr := svc.ListMembers(context.Background(), managerIdentity(), models.GroupDeliveryCrew)
	assert.Nil(t, svcErr)
	assert.Len(t, members, 1)
}

func TestDirectory_AddMember_UnknownUsernameNotFound(t *testing.T) {
	_, svc := newDirectoryFixture()

	_, svcErr := svc.AddMember(context.Background(), managerIdentity(), models.GroupManager, "nobody")
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Code)
}

func TestDirectory_AddMember_Idempotent(t *testing.T) {
	users, svc := newDirectoryFixture()
	users.addUser("sana", models.GroupDeliveryCrew)

	_, svcErr := svc.AddMember(context.Background(), managerIdentity(), models.GroupDeliveryCrew, "sana")
	assert.Nil(t, svcErr)

	members, _ := svc.ListMembers(context.Background(), managerIdentity(), models.GroupDeliveryCrew)
	assert.Len(t, members, 1)
	assert.Len(t, members[0].Groups, 1)
}

func TestDirectory_RemoveMember(t *testing.T) {
	users, svc := newDirectoryFixture()
	rider := users.addUser("rider", models.GroupDeliveryCrew)

	svcErr := svc.RemoveMember(context.Background(), customerIdentity(), models.GroupDeliveryCrew, rider.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Code)

	svcErr = svc.RemoveMember(context.Background(), managerIdentity(), models.GroupDeliveryCrew, rider.ID)
	assert.Nil(t, svcErr)

	members, _ := svc.ListMembers(context.Background(), managerIdentity(), models.GroupDeliveryCrew)
	assert.Empty(t, members)
}

func TestDirectory_RemoveMember_NotFoundCases(t *testing.T) {
	users, svc := newDirectoryFixture()
	plain := users.addUser("plain")

	svcErr := svc.RemoveMember(context.Background(), managerIdentity(), models.GroupDeliveryCrew, uuid.New())
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Code)

	svcErr = svc.RemoveMember(context.Background(), managerIdentity(), models.GroupDeliveryCrew, plain.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Code)
}

func TestDirectory_RemoveLastManagerAllowed(t *testing.T) {
	users, svc := newDirectoryFixture()
	boss := users.addUser("boss", models.GroupManager)

	svcErr := svc.RemoveMember(context.Background(), managerIdentity(), models.GroupManager, boss.ID)
	assert.Nil(t, svcErr)

	members, _ := svc.ListMembers(context.Background(), managerIdentity(), models.GroupManager)
	assert.Empty(t, members)
}
