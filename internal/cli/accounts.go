package cli

import (
	"strings"

	"mercprd/internal/apperrors"
	"mercprd/internal/models"
)

func (a *App) printAccounts(accounts []models.AccountSummary) {
	for _, acc := range accounts {
		a.printf(" - Usuário: %s (%s)\n", capitalize(acc.Username), acc.Role())
	}
	a.printf("%s\n", strings.Repeat("-", 30))
}

// manageAccounts lists every account and loops on change or delete
// requests until the administrator answers "n".
func (a *App) manageAccounts(session *Session) error {
	a.printf("\n--- Gerenciamento de Contas ---\n")
	accounts, err := a.accounts.AdminListAccounts()
	if err != nil {
		a.fail(err)
		return nil
	}
	if len(accounts) == 0 {
		a.printf("Nenhum usuário cadastrado.\n")
		return nil
	}
	a.printAccounts(accounts)

	for {
		answer, err := a.prompt("Deseja alterar ou excluir alguma conta? (s/n): ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "s":
			action, err := a.prompt("Digite 'a' para Alterar senha ou 'e' para Excluir conta: ")
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(action)) {
			case "a":
				err = a.adminSetPassword(session, accounts)
			case "e":
				err = a.adminDeleteAccount(session, accounts)
			default:
				a.printf("Opção inválida.\n")
			}
			if err != nil {
				return err
			}

			if accounts, err = a.accounts.AdminListAccounts(); err != nil {
				a.fail(err)
				return nil
			}
			a.printf("\nLista de contas atualizada:\n")
			a.printAccounts(accounts)
		case "n":
			a.printf("Voltando ao menu principal do administrador.\n")
			return nil
		default:
			a.printf("Opção inválida. Por favor, digite 's' ou 'n'.\n")
		}
	}
}

func listed(accounts []models.AccountSummary, username string) bool {
	name := strings.ToLower(username)
	for _, acc := range accounts {
		if acc.Username == name {
			return true
		}
	}
	return false
}

func (a *App) adminSetPassword(session *Session, accounts []models.AccountSummary) error {
	a.printf("\n--- Alterar Senha de Usuário ---\n")
	username, err := a.prompt("Digite o nome de usuário da conta a ser alterada: ")
	if err != nil {
		return err
	}
	if !listed(accounts, username) {
		a.fail(apperrors.ErrAccountNotFound)
		return nil
	}
	password, err := a.readPass("Digite a nova senha para esta conta: ")
	if err != nil {
		return err
	}

	if err := a.accounts.AdminSetPassword(username, password); err != nil {
		a.fail(err)
		return nil
	}
	a.log.WithFields(session.Fields()).WithField("target", strings.ToLower(username)).Info("password reset from menu")
	a.printf("\nSenha do usuário '%s' alterada com sucesso!\n", username)
	return nil
}

func (a *App) adminDeleteAccount(session *Session, accounts []models.AccountSummary) error {
	a.printf("\n--- Excluir Conta de Usuário ---\n")
	username, err := a.prompt("Digite o nome de usuário da conta que deseja excluir: ")
	if err != nil {
		return err
	}
	if !listed(accounts, username) {
		a.printf("\nErro: Usuário '%s' não encontrado.\n", username)
		return nil
	}
	yes, err := a.confirm("Tem certeza que deseja excluir a conta de '" + username + "'?")
	if err != nil {
		return err
	}
	if !yes {
		a.printf("\nOperação cancelada.\n")
		return nil
	}

	if err := a.accounts.AdminDeleteAccount(username); err != nil {
		a.fail(err)
		return nil
	}
	a.log.WithFields(session.Fields()).WithField("target", strings.ToLower(username)).Info("account deleted from menu")
	a.printf("\nConta de '%s' excluída com sucesso.\n", username)
	return nil
}
