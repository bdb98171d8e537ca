package api

// Outcome status values returned by Admit.
const (
	StatusRoomCreated          = "ROOM_CREATED"
	StatusIncompleteNonLeaders = "INCOMPLETE_NON_LEADERS"
	StatusIncompleteNoLeader   = "INCOMPLETE_NO_LEADER"
)

type User struct {
	Id          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type WaitingEntry struct {
	Id          int64  `json:"id"`
	UserId      int64  `json:"user_id"`
	ServiceType string `json:"service_type"`
	Leader      bool   `json:"leader"`
	CreatedAt   int64  `json:"created_at"`
}

// Room is returned to members, so it carries the opened password.
type Room struct {
	Id          string  `json:"id"`
	ServiceType string  `json:"service_type"`
	LeaderId    int64   `json:"leader_id"`
	MemberIds   []int64 `json:"member_ids"`
	AccountId   string  `json:"account_id"`
	Password    string  `json:"password,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

type AdmitRequest struct {
	Username    string `json:"username"`
	ServiceType string `json:"service_type"`
	Leader      bool   `json:"leader"`
	AccountId   string `json:"account_id,omitempty"`
	Password    string `json:"password,omitempty"`
}

type AdmitResponse struct {
	EntryId int64  `json:"entry_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
	// Room is set only when Status is StatusRoomCreated. The password is
	// not included; members fetch it with GetRoom.
	Room *Room `json:"room,omitempty"`
}

type CancelRequest struct {
	EntryId int64 `json:"entry_id"`
}

type CancelResponse struct{}

type LookupEntryRequest struct {
	UserId int64 `json:"user_id"`
}

// LookupEntryResponse has EntryId 0 and Found false when the user is not waiting.
type LookupEntryResponse struct {
	EntryId int64 `json:"entry_id"`
	Found   bool  `json:"found"`
}

type GetRoomRequest struct {
	RoomId string `json:"room_id"`
}

type GetRoomResponse struct {
	Room *Room `json:"room"`
}

type ListRoomsRequest struct {
	UserId int64 `json:"user_id"`
}

type ListRoomsResponse struct {
	Rooms []*Room `json:"rooms"`
}

type ListPoolRequest struct {
	ServiceType string `json:"service_type"`
}

type ListPoolResponse struct {
	Entries []*WaitingEntry `json:"entries"`
}

type RegisterUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

type RegisterUserResponse struct {
	User *User `json:"user"`
}
