package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// 生成 ADMIN_PASSWORD_HASH 所需的 bcrypt 哈希
func main() {
	var password string
	var cost int
	flag.StringVar(&password, "password", "", "明文密码，留空时从标准输入读取")
	flag.IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatal("读取密码失败:", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := hashPassword(password, cost)
	if err != nil {
		log.Fatal("密码加密失败:", err)
	}

	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
}

func hashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
