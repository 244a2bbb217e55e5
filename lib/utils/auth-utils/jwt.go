package authutils

import (
	"home-task-tracker/models"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

func GetToken(secret string, expireInSec int, userID uint, name string, role models.UserRole, now time.Time) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"role": string(role),
		"exp":  now.Add(time.Second * time.Duration(expireInSec)).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}

func ClaimsUserID(claims jwt.MapClaims) (uint, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("invalid token subject: %v", sub)
	}
	return uint(id), nil
}

func ClaimsRole(claims jwt.MapClaims) models.UserRole {
	role, _ := claims["role"].(string)
	return models.UserRole(role)
}

func GetUserID(ctx *fiber.Ctx) (uint, error) {
	return ClaimsUserID(GetClaims(ctx))
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return ClaimsRole(GetClaims(ctx))
}
