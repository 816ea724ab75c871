package services

import (
	"context"
	"testing"

	"chamalink/internal/adapters/persistence/models"
	"chamalink/internal/adapters/persistence/repositories"
	"chamalink/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type dupMemberRepo struct {
	*fakeMemberRepo
}

func (r *dupMemberRepo) Create(_ context.Context, _ *models.Member) error {
	return gorm.ErrDuplicatedKey
}

func newMemberService(repo repositories.MemberRepository) *MemberService {
	return NewMemberService(repo, newFakePaymentRepo(), testPaymentConfig(), testClock)
}

func TestCreateMemberDefaults(t *testing.T) {
	svc := newMemberService(newFakeMemberRepo())

	member, err := svc.Create(context.Background(), &CreateMemberInput{
		Name:  "Wanjiku Kamau",
		Phone: "0712345678",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MemberStatusPending, member.Status)
	assert.Equal(t, "2024-05-15", member.JoinedDate)
	assert.Equal(t, "images/default.jpg", member.Image)

	require.NotNil(t, member.NextPaymentDeadline)
	assert.Equal(t, testTime.AddDate(0, 0, 10), *member.NextPaymentDeadline)
}

func TestCreateMemberKeepsProvidedFields(t *testing.T) {
	svc := newMemberService(newFakeMemberRepo())

	member, err := svc.Create(context.Background(), &CreateMemberInput{
		Name:       "Wanjiku Kamau",
		Phone:      "0712345678",
		JoinedDate: "2023-01-20",
		Image:      "images/wanjiku.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "2023-01-20", member.JoinedDate)
	assert.Equal(t, "images/wanjiku.jpg", member.Image)
}

func TestCreateMemberDuplicatePhone(t *testing.T) {
	svc := newMemberService(&dupMemberRepo{fakeMemberRepo: newFakeMemberRepo()})

	_, err := svc.Create(context.Background(), &CreateMemberInput{
		Name:  "Wanjiku Kamau",
		Phone: "0712345678",
	})
	assert.ErrorIs(t, err, ErrMemberPhoneTaken)
}

func TestGetMemberNotFound(t *testing.T) {
	svc := newMemberService(newFakeMemberRepo())

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestUpdateMemberPartialFields(t *testing.T) {
	repo := newFakeMemberRepo(1)
	repo.members[1].Name = "Wanjiku Kamau"
	repo.members[1].Phone = "0712345678"
	repo.members[1].Status = domain.MemberStatusPending
	svc := newMemberService(repo)

	member, err := svc.Update(context.Background(), 1, &UpdateMemberInput{
		Status: domain.MemberStatusActive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Wanjiku Kamau", member.Name)
	assert.Equal(t, "0712345678", member.Phone)
	assert.Equal(t, domain.MemberStatusActive, member.Status)
}
