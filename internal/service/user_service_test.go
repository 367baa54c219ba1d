package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "hbnb/internal/errors"
	"hbnb/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateUserInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			input: CreateUserInput{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Password:  "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "duplicate email rejected",
			input: CreateUserInput{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "taken@example.com",
				Password:  "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.CreateUser(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_CreateUser_RejectsMalformedEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "missing@tld@"} {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo, nil)

		user, err := svc.CreateUser(context.Background(), CreateUserInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     email,
			Password:  "password123",
		})
		assert.Error(t, err, "email %q", email)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestUserService_CreateUser_PasswordNeverSerialized(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "password123",
	})
	assert.NoError(t, err)

	payload, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), user.PasswordHash)
}

func TestUserService_UpdateUser_Authorization(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	newEmail := "new@example.com"
	newName := "Grace"

	tests := []struct {
		name          string
		actor         Actor
		targetID      uuid.UUID
		input         UpdateUserInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "user updates own name",
			actor:    Actor{ID: userID},
			targetID: userID,
			input:    UpdateUserInput{FirstName: &newName},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "old@example.com"}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "user cannot update someone else",
			actor:         Actor{ID: userID},
			targetID:      otherID,
			input:         UpdateUserInput{FirstName: &newName},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "non-admin cannot change own email",
			actor:         Actor{ID: userID},
			targetID:      userID,
			input:         UpdateUserInput{Email: &newEmail},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:     "admin changes another user's email",
			actor:    Actor{ID: otherID, IsAdmin: true},
			targetID: userID,
			input:    UpdateUserInput{Email: &newEmail},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "old@example.com"}, nil)
				m.On("FindByEmail", mock.Anything, newEmail).Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "admin email change rejected when taken",
			actor:    Actor{ID: otherID, IsAdmin: true},
			targetID: userID,
			input:    UpdateUserInput{Email: &newEmail},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "old@example.com"}, nil)
				m.On("FindByEmail", mock.Anything, newEmail).Return(&model.User{ID: uuid.New(), Email: newEmail}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.UpdateUser(context.Background(), tt.actor, tt.targetID, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	userID := uuid.New()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), 10)
	newPassword := "newpassword"

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "u@example.com", PasswordHash: string(oldHash)}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.UpdateUser(context.Background(), Actor{ID: uuid.New(), IsAdmin: true}, userID, UpdateUserInput{Password: &newPassword})

	assert.NoError(t, err)
	assert.NotEqual(t, string(oldHash), user.PasswordHash)
	assert.True(t, svc.CheckPassword(user, newPassword))
	assert.False(t, svc.CheckPassword(user, "oldpassword"))
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.GetUser(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}
