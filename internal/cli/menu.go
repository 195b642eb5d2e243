package cli

import (
	"strings"
	"time"
)

func (a *App) mainMenu() error {
	for {
		a.printf("\nPor favor, selecione uma das opções abaixo para continuar:\n")
		a.printf("1 - Fazer login\n")
		a.printf("2 - Criar uma nova conta\n")
		a.printf("3 - Trocar senha (para quem esqueceu)\n")
		a.printf("4 - Sair\n")

		hasAdmin, err := a.accounts.HasAdmin()
		if err != nil {
			a.fail(err)
		} else if !hasAdmin {
			a.printf("--- ATENÇÃO: Nenhum administrador cadastrado. ---\n")
			a.printf("Para criar o administrador, digite 'admin'\n")
		}

		option, err := a.prompt("Escolha uma opção (1, 2, 3, 4 ou 'admin'): ")
		if err != nil {
			return err
		}

		switch option = strings.TrimSpace(option); {
		case option == "1":
			err = a.login()
		case option == "2":
			err = a.register()
		case option == "3":
			err = a.changePassword("")
		case option == "4":
			a.printf("\nObrigado por usar o sistema. Até mais!\n")
			return nil
		case strings.EqualFold(option, "admin"):
			err = a.bootstrapAdmin()
		default:
			a.printf("\nOpção inválida. Por favor, tente novamente.\n")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) login() error {
	a.printf("\n--- Acesso à conta ---\n")
	username, err := a.prompt("Usuário: ")
	if err != nil {
		return err
	}
	password, err := a.readPass("Senha: ")
	if err != nil {
		return err
	}

	account, err := a.accounts.Authenticate(username, password)
	if err != nil {
		a.fail(err)
		return nil
	}
	a.printf("\nLogin bem-sucedido! Bem-vindo(a), %s!\n", capitalize(account.Username))

	session := newSession(account, a.now())
	log := a.log.WithFields(session.Fields())
	log.Info("session started")
	defer func() {
		log.WithField("duration", a.now().Sub(session.Started).Round(time.Second).String()).Info("session ended")
	}()

	if session.IsAdmin() {
		return a.adminMenu(session)
	}
	return a.userMenu(session)
}

func (a *App) register() error {
	a.printf("\n--- Criação de nova conta ---\n")
	username, err := a.prompt("Digite um nome de usuário: ")
	if err != nil {
		return err
	}
	password, err := a.readPass("Digite uma senha: ")
	if err != nil {
		return err
	}

	if _, err := a.accounts.Register(username, password); err != nil {
		a.fail(err)
		return nil
	}
	a.printf("\nConta criada com sucesso! Agora você pode fazer o login.\n")
	return nil
}

// changePassword runs the self-service password change. An empty username
// is asked for; a logged-in session passes its own.
func (a *App) changePassword(username string) error {
	a.printf("\n--- Troca de Senha ---\n")
	var err error
	if username == "" {
		if username, err = a.prompt("Digite seu nome de usuário: "); err != nil {
			return err
		}
	}
	current, err := a.readPass("Digite sua senha atual: ")
	if err != nil {
		return err
	}
	next, err := a.readPass("Digite sua nova senha: ")
	if err != nil {
		return err
	}

	if err := a.accounts.ChangeOwnPassword(username, current, next); err != nil {
		a.fail(err)
		return nil
	}
	a.printf("\nSenha alterada com sucesso!\n")
	return nil
}

func (a *App) bootstrapAdmin() error {
	a.printf("\n--- Criação da Conta de Administrador ---\n")
	a.printf("Esta operação deve ser feita apenas uma vez.\n")
	username, err := a.prompt("Digite o nome de usuário do administrador: ")
	if err != nil {
		return err
	}
	password, err := a.readPass("Digite a senha do administrador: ")
	if err != nil {
		return err
	}

	if _, err := a.accounts.BootstrapAdmin(username, password); err != nil {
		a.fail(err)
		return nil
	}
	a.printf("\nConta de administrador criada com sucesso!\n")
	return nil
}

func (a *App) adminMenu(session *Session) error {
	for {
		a.printf("\n--- Menu do Administrador ---\n")
		a.printf("1 - Gerenciar Usuários\n")
		a.printf("2 - Gerenciar Produtos\n")
		a.printf("3 - Trocar minha senha\n")
		a.printf("4 - Sair do menu de administrador\n")

		option, err := a.prompt("Escolha uma opção (1, 2, 3 ou 4): ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(option) {
		case "1":
			err = a.manageAccounts(session)
		case "2":
			err = a.productMenu(session)
		case "3":
			err = a.changePassword(session.Account.Username)
		case "4":
			a.printf("\nSaindo do menu de administrador...\n")
			return nil
		default:
			a.printf("\nOpção inválida. Por favor, tente novamente.\n")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) userMenu(session *Session) error {
	for {
		a.printf("\n--- Menu do Usuário Comum ---\n")
		a.printf("1 - Visualizar produtos\n")
		a.printf("2 - Cadastrar produto\n")
		a.printf("3 - Trocar minha senha\n")
		a.printf("4 - Sair\n")

		option, err := a.prompt("Escolha uma opção (1, 2, 3 ou 4): ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(option) {
		case "1":
			a.listProducts()
		case "2":
			err = a.createProduct(session)
		case "3":
			err = a.changePassword(session.Account.Username)
		case "4":
			a.printf("\nSaindo do menu de usuário...\n")
			return nil
		default:
			a.printf("\nOpção inválida. Por favor, tente novamente.\n")
		}
		if err != nil {
			return err
		}
	}
}
