package cli

import (
	"fmt"
	"strconv"
	"strings"

	"mercprd/internal/models"
)

func (a *App) productMenu(session *Session) error {
	for {
		a.printf("\n--- Gerenciamento de Produtos ---\n")
		a.printf("1 - Cadastrar novo produto\n")
		a.printf("2 - Visualizar produtos\n")
		a.printf("3 - Editar produto\n")
		a.printf("4 - Excluir produto\n")
		a.printf("5 - Voltar ao menu principal\n")

		option, err := a.prompt("Escolha uma opção: ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(option) {
		case "1":
			err = a.createProduct(session)
		case "2":
			a.listProducts()
		case "3":
			err = a.editProduct(session)
		case "4":
			err = a.deleteProduct(session)
		case "5":
			return nil
		default:
			a.printf("\nOpção inválida.\n")
		}
		if err != nil {
			return err
		}
	}
}

// FormatProduct renders one line of the product listing.
func FormatProduct(p models.Product) string {
	return fmt.Sprintf("ID: %d | Nome: %s | Preço: R$%.2f | Quantidade: %d", p.ID, p.Name, p.Price, p.Quantity)
}

func (a *App) listProducts() {
	a.printf("\n--- Produtos Cadastrados ---\n")
	products, err := a.products.List()
	if err != nil {
		a.fail(err)
		return
	}
	if len(products) == 0 {
		a.printf("Nenhum produto cadastrado.\n")
		return
	}
	for _, p := range products {
		a.printf("%s\n", FormatProduct(p))
	}
}

func (a *App) createProduct(session *Session) error {
	a.printf("\n--- Cadastrar Novo Produto ---\n")
	name, err := a.prompt("Nome do produto: ")
	if err != nil {
		return err
	}
	price, err := a.prompt("Preço: ")
	if err != nil {
		return err
	}
	quantity, err := a.prompt("Quantidade: ")
	if err != nil {
		return err
	}

	product, err := a.products.Create(name, price, quantity)
	if err != nil {
		a.fail(err)
		return nil
	}
	a.log.WithFields(session.Fields()).WithField("product", product.ID).Debug("product created from menu")
	a.printf("\nProduto cadastrado com sucesso!\n")
	return nil
}

// readProductID asks for an id. ok is false when the input is not an id.
func (a *App) readProductID(label string) (id int64, ok bool, err error) {
	raw, err := a.prompt(label)
	if err != nil {
		return 0, false, err
	}
	id, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if perr != nil {
		a.printf("\nErro: ID do produto inválido.\n")
		return 0, false, nil
	}
	return id, true, nil
}

func (a *App) editProduct(session *Session) error {
	if !session.IsAdmin() {
		a.printf("\nErro: Apenas o administrador pode editar produtos.\n")
		return nil
	}

	a.listProducts()
	a.printf("\n--- Editar Produto ---\n")
	id, ok, err := a.readProductID("Digite o ID do produto que deseja editar: ")
	if err != nil || !ok {
		return err
	}

	var changes models.ProductChanges
	fields := []struct {
		label string
		dst   **string
	}{
		{"Novo nome do produto (deixe em branco para não alterar): ", &changes.Name},
		{"Novo preço (deixe em branco para não alterar): ", &changes.Price},
		{"Nova quantidade (deixe em branco para não alterar): ", &changes.Quantity},
	}
	for _, f := range fields {
		v, err := a.prompt(f.label)
		if err != nil {
			return err
		}
		if v != "" {
			value := v
			*f.dst = &value
		}
	}

	if _, err := a.products.Edit(id, changes); err != nil {
		a.fail(err)
		return nil
	}
	if changes.Empty() {
		a.printf("\nNenhuma alteração foi feita.\n")
		return nil
	}
	a.log.WithFields(session.Fields()).WithField("product", id).Debug("product edited from menu")
	a.printf("\nProduto editado com sucesso!\n")
	return nil
}

func (a *App) deleteProduct(session *Session) error {
	if !session.IsAdmin() {
		a.printf("\nErro: Apenas o administrador pode excluir produtos.\n")
		return nil
	}

	a.listProducts()
	a.printf("\n--- Excluir Produto ---\n")
	id, ok, err := a.readProductID("Digite o ID do produto que deseja excluir: ")
	if err != nil || !ok {
		return err
	}

	product, err := a.products.Get(id)
	if err != nil {
		a.fail(err)
		return nil
	}
	yes, err := a.confirm("Tem certeza que deseja excluir o produto '" + product.Name + "'?")
	if err != nil {
		return err
	}
	if !yes {
		a.printf("\nOperação cancelada.\n")
		return nil
	}

	if err := a.products.Delete(id); err != nil {
		a.fail(err)
		return nil
	}
	a.log.WithFields(session.Fields()).WithField("product", id).Debug("product deleted from menu")
	a.printf("\nProduto excluído com sucesso!\n")
	return nil
}
