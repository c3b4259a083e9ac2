package document

// Clause is a fixed block of contract boilerplate.
type Clause struct {
	Heading string
	Body    string
}

// Clauses is the boilerplate printed in every contract, in order.
var Clauses = [10]Clause{
	{
		"1. Objeto",
		"O presente contrato tem por objeto a prestação dos serviços acima descritos pelo CONTRATADO ao CONTRATANTE, conforme escopo, prazos e condições aqui estabelecidos.",
	},
	{
		"2. Vigência e Prazo",
		"Este contrato tem vigência a partir de sua assinatura. Quando aplicável, o vencimento indicado acima servirá como referência para conclusão, entrega ou renovação, salvo ajuste diferente entre as partes.",
	},
	{
		"3. Obrigações do Contratado",
		"Prestar os serviços com diligência e dentro do prazo; manter confidencialidade sobre informações do CONTRATANTE; informar eventuais impedimentos e solicitar materiais ou acessos necessários.",
	},
	{
		"4. Obrigações do Contratante",
		"Fornecer informações, materiais e acessos necessários; acompanhar entregas; efetuar os pagamentos nos prazos combinados; aprovar ou solicitar ajustes em tempo razoável.",
	},
	{
		"5. Pagamento",
		"O CONTRATANTE pagará ao CONTRATADO o valor ajustado, conforme a forma de pagamento indicada. Juros e correção poderão incidir em caso de atraso, conforme legislação aplicável.",
	},
	{
		"6. Propriedade Intelectual",
		"Salvo ajuste em contrário, entregas personalizadas pertencem ao CONTRATANTE após quitação. Ferramentas, métodos e know-how preexistentes permanecem de propriedade do CONTRATADO.",
	},
	{
		"7. Confidencialidade",
		"As partes manterão confidenciais quaisquer informações técnicas, comerciais ou estratégicas recebidas durante a execução deste contrato, pelo prazo de 5 anos após o término, salvo por obrigação legal.",
	},
	{
		"8. Rescisão",
		"O contrato pode ser rescindido por qualquer parte em caso de descumprimento material não sanado, ou por acordo mútuo. Valores devidos até a data da rescisão permanecem exigíveis.",
	},
	{
		"9. Responsabilidade",
		"O CONTRATADO responde pela execução dos serviços conforme boas práticas. Em nenhuma hipótese será responsável por danos indiretos, lucros cessantes ou perda de receita, salvo dolo.",
	},
	{
		"10. Foro",
		"As partes elegem o foro da cidade mencionada no cabeçalho para dirimir quaisquer dúvidas oriundas deste contrato, com renúncia a qualquer outro, por mais privilegiado que seja.",
	},
}

const (
	declarationHeading = "Declaração e Assinaturas"
	declarationBody    = "As partes declaram ter lido e concordado com as cláusulas acima. Este contrato pode ser assinado eletronicamente ou fisicamente em duas vias de igual teor."
)
