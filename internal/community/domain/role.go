package domain

// UserType is the platform role attached to a user account. Role strings come
// from the auth service's tokens and from the users table; anything else is
// treated as an ordinary member.
type UserType string

const (
	UserTypeMember         UserType = "member"
	UserTypeCommunityAdmin UserType = "community_admin"
	UserTypePlatformAdmin  UserType = "platform_admin"
)

// ParseUserType maps a raw role string onto the enum, defaulting unknown
// values to plain member so a bad token can never grant privileges.
func ParseUserType(s string) UserType {
	switch UserType(s) {
	case UserTypeCommunityAdmin:
		return UserTypeCommunityAdmin
	case UserTypePlatformAdmin:
		return UserTypePlatformAdmin
	default:
		return UserTypeMember
	}
}
