package service

import (
	"aeducacao_backend/internal/config"
	"aeducacao_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService 管理端令牌签发。只有一个管理员主体，密码以bcrypt
// 哈希存在配置里，校验通过后签发带admin角色的JWT。
type AuthService struct {
	Cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{Cfg: cfg}
}

// IssueAdminToken 校验管理员密码并返回JWT。username留空时按配置里的
// 管理员主体处理。
func (s *AuthService) IssueAdminToken(username, password string) (string, error) {
	if username == "" {
		username = s.Cfg.Admin.Username
	}
	if username != s.Cfg.Admin.Username || s.Cfg.Admin.PasswordHash == "" {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.Cfg.Admin.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(username, "admin", s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}
