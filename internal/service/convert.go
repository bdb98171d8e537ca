package service

import (
	"github.com/mmynk/ottshare/internal/models"
	"github.com/mmynk/ottshare/pkg/api"
)

func roomToAPI(room *models.Room) *api.Room {
	return &api.Room{
		Id:          room.ID,
		ServiceType: string(room.ServiceType),
		LeaderId:    room.LeaderID,
		MemberIds:   room.MemberIDs,
		AccountId:   room.Credentials.AccountID,
		CreatedAt:   room.CreatedAt,
	}
}

func roomViewToAPI(view *models.RoomView) *api.Room {
	r := roomToAPI(&view.Room)
	r.Password = view.Password
	return r
}

func entryToAPI(entry *models.WaitingEntry) *api.WaitingEntry {
	return &api.WaitingEntry{
		Id:          entry.ID,
		UserId:      entry.UserID,
		ServiceType: string(entry.ServiceType),
		Leader:      entry.Leader,
		CreatedAt:   entry.CreatedAt,
	}
}

func userToAPI(user *models.User) *api.User {
	return &api.User{
		Id:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}
