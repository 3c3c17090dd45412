package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/deckpilot/deckpilot/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) mustChangePassword() bool {
	return a.session.MustChangePassword()
}

func (a *App) needPhoneVerification() bool {
	return a.session.NeedPhoneVerification()
}

// Register prompts the user for a username and password and attempts to
// create a new account. Registration may be disabled server-side; in that
// case the user is told and nothing else happens.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	allowed, err := a.session.RegistrationAllowed(ctx)
	if err != nil {
		return err
	}
	if !allowed {
		fmt.Println("Registration is currently closed. Ask an administrator for an account.")
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.session.Register(ctx, userName, string(password)); err != nil {
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success it reports the account gates that are still pending, if any.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, userName, string(password), true); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return nil
	}

	log.Printf("Login successful")
	if a.session.MustChangePassword() {
		fmt.Println("Your password must be changed before you can continue. Use: passwd")
	}
	if a.session.NeedPhoneVerification() {
		fmt.Println("A verified phone number is required. Use: bindphone")
	}
	return nil
}

// Logout drops the server session, the local project and all tracked tasks.
func (a *App) Logout(ctx context.Context) error {
	a.store.Close()
	a.session.Logout(ctx)
	fmt.Println("Logged out.")
	return nil
}

// Reset logs out and wipes every locally persisted field, including the
// remembered last-open project. Useful when switching servers or accounts.
func (a *App) Reset(ctx context.Context) error {
	a.store.Close()
	a.session.Logout(ctx)
	if err := a.repo.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Local state cleared.")
	return nil
}

// WhoAmI prints the current profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s (%s)\n", u.Username, u.Role)
	if u.Phone != "" {
		fmt.Printf("Phone: %s\n", u.Phone)
	}
	fmt.Printf("Membership: %s, image quota: %d, premium quota: %d\n",
		u.MembershipLevel, u.ImageQuota, u.PremiumQuota)
	return nil
}

// ChangePassword prompts for the old and new password and applies the change.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPw, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	if err := a.session.ChangePassword(ctx, string(oldPw), string(newPw)); err != nil {
		return err
	}

	fmt.Println("Password changed.")
	return nil
}

// BindPhone requests an SMS code for the entered number and verifies it.
func (a *App) BindPhone(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SendCode(ctx, phone); err != nil {
		return err
	}
	fmt.Println("Verification code sent.")

	code, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.BindPhone(ctx, phone, code); err != nil {
		return err
	}

	fmt.Println("Phone number verified.")
	return nil
}
